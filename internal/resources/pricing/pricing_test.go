package pricing

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-console/internal/models"
	"backoffice-console/internal/resource/resourcetest"
)

func TestGetAndUpdate(t *testing.T) {
	current := models.Pricing{Employee: 10, Snacking: 2.5, Teambuilding: 30, WellBeing: 20}
	env := resourcetest.New(t, resourcetest.JSON(http.StatusOK, current))
	client := New(env.Runtime)
	ctx := context.Background()

	got, err := client.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, current, got)

	_, err = client.Update(ctx, current)
	require.NoError(t, err)
	req := env.Last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.JSONEq(t, `{"employee":10,"snacking":2.5,"teambuilding":30,"wellBeing":20}`, string(req.Body))
}

func TestUpdate_NegativeRejected(t *testing.T) {
	env := resourcetest.New(t, resourcetest.JSON(http.StatusOK, nil))
	client := New(env.Runtime)

	_, err := client.Update(context.Background(), models.Pricing{Employee: -1})
	require.Error(t, err)
	assert.Empty(t, env.Requests())
}

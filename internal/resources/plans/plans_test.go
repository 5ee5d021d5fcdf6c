package plans

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource/resourcetest"
)

func TestCreate_ValidatesBeforeRequest(t *testing.T) {
	var hits atomic.Int32
	env := resourcetest.New(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		resourcetest.Respond(w, http.StatusCreated, models.Plan{ID: "p1"})
	})
	client := New(env.Runtime)

	_, err := client.Create(context.Background(), models.PlanInput{Credit: 10, Price: 100})
	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
	assert.Zero(t, hits.Load())
	assert.Len(t, env.Toasts.Drain(), 1)
}

func TestCreate_SendsBenefitsAndActivityIDs(t *testing.T) {
	env := resourcetest.New(t, resourcetest.JSON(http.StatusCreated, models.Plan{ID: "p1"}))
	client := New(env.Runtime)

	plan := models.Plan{Name: "Gold", Credit: 10, Price: 99.5, Benefits: []string{"Support"}, Activities: []models.Activity{{ID: "a1"}, {ID: "a2"}}}
	_, err := client.Create(context.Background(), plan.Input())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Gold","credit":10,"price":99.5,"benifits":["Support"],"activities":["a1","a2"]}`, string(env.Last(t).Body))
}

func TestListIsNotMutatedBeforeConfirmation(t *testing.T) {
	plans := []models.Plan{{ID: "p1", Name: "Gold"}}
	var fail atomic.Bool
	fail.Store(true)
	env := resourcetest.New(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			resourcetest.Respond(w, http.StatusOK, plans)
		case fail.Load():
			resourcetest.Respond(w, http.StatusInternalServerError, map[string]string{"message": "db down"})
		default:
			plans = nil
			w.WriteHeader(http.StatusNoContent)
		}
	})
	client := New(env.Runtime)
	ctx := context.Background()

	list, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.Error(t, client.Delete(ctx, "p1"))
	list, err = client.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "failed delete leaves the list untouched")

	fail.Store(false)
	require.NoError(t, client.Delete(ctx, "p1"))
	list, err = client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "confirmed delete refetches")
}

package pages

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource/resourcetest"
)

func validActivity() models.Activity {
	return models.Activity{
		Name:        "Yoga",
		Description: "Morning yoga",
		Address:     "1 rue de Paris",
		City:        "Paris",
		PostalCode:  "75001",
		Duration:    1.5,
		CreditCost:  3,
		Types:       []models.ActivityType{models.ActivityWellBeing},
		KeyWords:    []string{"calm", "stretch"},
	}
}

func TestActivityEditor_MainImageInvariant(t *testing.T) {
	e := NewActivityEditor(nil)
	e.Persisted = []PersistedImage{{ID: "p1", IsMain: true}, {ID: "p2"}}

	require.NoError(t, e.AddImage(LocalImage{Name: "a.png"}))
	assert.False(t, e.Local[0].IsMain, "only the first image of an empty list is main")

	require.NoError(t, e.SetMain(2))
	assert.Equal(t, 2, e.MainIndex())
	assert.False(t, e.Persisted[0].IsMain)

	mains := 0
	for i := 0; i < e.ImageCount(); i++ {
		if *e.flag(i) {
			mains++
		}
	}
	assert.Equal(t, 1, mains)

	require.NoError(t, e.RemoveImage(2))
	assert.Equal(t, 0, e.MainIndex(), "first remaining image is promoted")

	require.Error(t, e.SetMain(5))
	require.Error(t, e.RemoveImage(-1))
}

func TestActivityEditor_AddImageLimit(t *testing.T) {
	e := NewActivityEditor(nil)
	for i := 0; i < MaxActivityImages; i++ {
		require.NoError(t, e.AddImage(LocalImage{Name: "img.png"}))
	}
	assert.True(t, e.Local[0].IsMain)

	err := e.AddImage(LocalImage{Name: "extra.png"})
	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
	assert.Equal(t, MaxActivityImages, e.ImageCount())
}

func TestActivityEditor_InsideCompanyClearsAddress(t *testing.T) {
	e := NewActivityEditor(nil)
	e.Form = validActivity()
	e.SetInsideCompany(true)
	assert.Empty(t, e.Form.Address)
	assert.Empty(t, e.Form.City)
	assert.Empty(t, e.Form.PostalCode)
}

func TestActivityEditor_CreateWithSecondImageMain(t *testing.T) {
	env := resourcetest.New(t, resourcetest.JSON(http.StatusCreated, models.Activity{ID: "a1", Name: "Yoga"}))
	e := NewActivityEditor(env.Runtime)
	require.NoError(t, e.Load(context.Background(), NewActivityID))
	assert.True(t, e.IsNew())

	e.Form = validActivity()
	require.NoError(t, e.AddImage(LocalImage{Name: "first.png", ContentType: "image/png", Data: []byte("1")}))
	require.NoError(t, e.AddImage(LocalImage{Name: "second.png", ContentType: "image/png", Data: []byte("2")}))
	require.NoError(t, e.SetMain(1))

	created, err := e.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)
	assert.Equal(t, "a1", e.ID)

	req := env.Last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/activities", req.Path)
	require.NotNil(t, req.Form)
	assert.Equal(t, []string{"1"}, req.Form.Value["mainImageIndex"])
	require.Len(t, req.Form.File["images"], 2)
	assert.Equal(t, "second.png", req.Form.File["images"][1].Filename)
	assert.Equal(t, []string{"BIEN_ETRE"}, req.Form.Value["types[]"])
	assert.Equal(t, []string{"stretch"}, req.Form.Value["keyWords[1]"])
	assert.Equal(t, []string{"false"}, req.Form.Value["isInsideCompany"])
	assert.Equal(t, []string{"1.5"}, req.Form.Value["duration"])
}

func TestActivityEditor_ValidationBlocksSubmit(t *testing.T) {
	env := resourcetest.New(t, resourcetest.JSON(http.StatusCreated, models.Activity{ID: "a1"}))
	e := NewActivityEditor(env.Runtime)
	e.Form = validActivity()
	e.Form.Address = ""

	_, err := e.Submit(context.Background())
	require.Error(t, err)
	assert.Empty(t, env.Requests())
	toasts := env.Toasts.Drain()
	require.Len(t, toasts, 1)
	assert.Contains(t, toasts[0].Message, "Failed to create activity")

	e.SetInsideCompany(true)
	_, err = e.Submit(context.Background())
	require.NoError(t, err, "on-site activities need no address")
}

func TestActivityEditor_UpdateExisting(t *testing.T) {
	stored := validActivity()
	stored.ID = "a1"
	stored.Images = []models.ActivityImage{{ID: "img1", FullURL: "http://cdn/1.png", IsMain: true}, {ID: "img2", FullURL: "http://cdn/2.png"}}

	var mu sync.Mutex
	var calls []string
	env := resourcetest.New(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		resourcetest.Respond(w, http.StatusOK, stored)
	})
	ctx := context.Background()

	t.Run("main image only", func(t *testing.T) {
		e := NewActivityEditor(env.Runtime)
		require.NoError(t, e.Load(ctx, "a1"))
		require.Len(t, e.Persisted, 2)
		require.NoError(t, e.SetMain(1))

		mu.Lock()
		calls = nil
		mu.Unlock()
		_, err := e.Submit(ctx)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"PUT /activities/a1", "PUT /activities/a1/main-image"}, calls)
		assert.JSONEq(t, `{"imageId":"img2"}`, string(env.Last(t).Body))
	})

	t.Run("image set", func(t *testing.T) {
		e := NewActivityEditor(env.Runtime)
		require.NoError(t, e.Load(ctx, "a1"))
		require.NoError(t, e.RemoveImage(0))
		require.NoError(t, e.AddImage(LocalImage{Name: "new.png", Data: []byte("n")}))
		require.NoError(t, e.SetMain(1))

		mu.Lock()
		calls = nil
		mu.Unlock()
		_, err := e.Submit(ctx)
		require.NoError(t, err)

		mu.Lock()
		assert.Equal(t, []string{"PUT /activities/a1", "PUT /activities/a1/images"}, calls)
		mu.Unlock()
		req := env.Last(t)
		require.NotNil(t, req.Form)
		assert.Equal(t, []string{"img2"}, req.Form.Value["retainedImageIds[0]"])
		assert.Equal(t, []string{"1"}, req.Form.Value["mainImageIndex"])
		assert.Len(t, req.Form.File["images"], 1)
	})
}

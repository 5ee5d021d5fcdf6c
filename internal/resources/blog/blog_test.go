package blog

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource/resourcetest"
)

func TestList_UnwrapsEnvelope(t *testing.T) {
	env := resourcetest.New(t, resourcetest.JSON(http.StatusOK, apiclient.DataEnvelope[[]models.Article]{
		Data: []models.Article{{ID: "b1", Title: "Team days"}},
	}))
	client := New(env.Runtime)

	list, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Team days", list[0].Title)
}

func TestParagraphs(t *testing.T) {
	env := resourcetest.New(t, resourcetest.JSON(http.StatusOK, models.Paragraph{ID: "p1"}))
	client := New(env.Runtime)
	ctx := context.Background()

	_, err := client.CreateParagraph(ctx, "b1", ParagraphInput{
		Title:   "Intro",
		Content: "Hello",
		Image:   &forms.File{Name: "p.png", ContentType: "image/png", Data: []byte("png")},
	})
	require.NoError(t, err)
	req := env.Last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/articles/b1/paragraphs", req.Path)
	require.NotNil(t, req.Form)
	assert.Equal(t, []string{"Intro"}, req.Form.Value["title"])
	assert.Equal(t, []string{""}, req.Form.Value["subtitle"])
	assert.Len(t, req.Form.File["image"], 1)

	_, err = client.UpdateParagraph(ctx, "b1", "p1", ParagraphInput{Title: "Intro", Content: "Bye"})
	require.NoError(t, err)
	req = env.Last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/articles/b1/paragraphs/p1", req.Path)
	assert.Empty(t, req.Form.File["image"])

	require.NoError(t, client.DeleteParagraph(ctx, "b1", "p1"))
	assert.Equal(t, http.MethodDelete, env.Last(t).Method)
}

func TestParagraph_Validation(t *testing.T) {
	var hits atomic.Int32
	env := resourcetest.New(t, func(w http.ResponseWriter, r *http.Request) { hits.Add(1) })
	client := New(env.Runtime)

	_, err := client.CreateParagraph(context.Background(), "b1", ParagraphInput{Title: "No content"})
	require.Error(t, err)
	assert.Zero(t, hits.Load())
}

func TestUpdate_InvalidatesDetail(t *testing.T) {
	var gets atomic.Int32
	env := resourcetest.New(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets.Add(1)
		}
		resourcetest.Respond(w, http.StatusOK, models.Article{ID: "b1"})
	})
	client := New(env.Runtime)
	ctx := context.Background()

	_, err := client.Get(ctx, "b1")
	require.NoError(t, err)
	_, err = client.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), gets.Load())

	_, err = client.Update(ctx, "b1", forms.New().Add("title", "New"))
	require.NoError(t, err)
	_, err = client.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), gets.Load())
}

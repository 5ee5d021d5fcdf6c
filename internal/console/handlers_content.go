package console

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/pages"
	"backoffice-console/internal/resources/blog"
	"backoffice-console/internal/resources/plans"
)

func (h *handlers) listPlans(c echo.Context) error {
	cs := sessionFrom(c)
	list, err := plans.New(cs.Runtime).List(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.Plan{}
	}
	return ok(c, list)
}

func (h *handlers) getPlan(c echo.Context) error {
	cs := sessionFrom(c)
	p, err := plans.New(cs.Runtime).Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, p)
}

func (h *handlers) savePlan(c echo.Context, id string, status int) error {
	cs := sessionFrom(c)
	var in models.PlanInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	editor := pages.NewPlanEditor(cs.Runtime)
	if err := editor.Load(c.Request().Context(), id); err != nil {
		return err
	}
	editor.Name, editor.Credit, editor.Price = in.Name, in.Credit, in.Price
	editor.Benefits, editor.ActivityIDs = in.Benefits, in.Activities

	saved, err := editor.Submit(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, status, saved)
}

func (h *handlers) createPlan(c echo.Context) error {
	return h.savePlan(c, "", http.StatusCreated)
}

func (h *handlers) updatePlan(c echo.Context) error {
	return h.savePlan(c, c.Param("id"), http.StatusOK)
}

func (h *handlers) deletePlan(c echo.Context) error {
	cs := sessionFrom(c)
	if err := plans.New(cs.Runtime).Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c, nil)
}

func (h *handlers) listArticles(c echo.Context) error {
	cs := sessionFrom(c)
	list, err := blog.New(cs.Runtime).List(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.Article{}
	}
	return ok(c, list)
}

func (h *handlers) getArticle(c echo.Context) error {
	cs := sessionFrom(c)
	a, err := blog.New(cs.Runtime).Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, a)
}

// paragraphField is one entry of the paragraphs JSON field. ImageIndex
// points into the paragraphImages files.
type paragraphField struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Content    string `json:"content"`
	ImageIndex *int   `json:"imageIndex"`
}

// fillArticle copies the multipart article form into the editor. Tags are
// either a JSON array or a comma separated list.
func fillArticle(c echo.Context, e *pages.ArticleEditor) error {
	e.Article.Title = c.FormValue("title")
	e.Article.Subtitle = c.FormValue("subtitle")
	e.Article.Introduction = c.FormValue("introduction")
	e.Article.Conclusion = c.FormValue("conclusion")

	rawTags := c.FormValue("tags")
	var tags []string
	if err := json.Unmarshal([]byte(rawTags), &tags); err == nil {
		e.SetTags(strings.Join(tags, ","))
	} else {
		e.SetTags(rawTags)
	}

	thumbs, err := multipartFiles(c, "thumbnail")
	if err != nil {
		return err
	}
	if len(thumbs) > 0 {
		e.Thumbnail = &thumbs[0]
	}

	raw := c.FormValue("paragraphs")
	if raw == "" {
		return nil
	}
	var fields []paragraphField
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "paragraphs must be a JSON array")
	}
	images, err := multipartFiles(c, "paragraphImages")
	if err != nil {
		return err
	}
	drafts := make([]pages.ParagraphDraft, 0, len(fields))
	for _, f := range fields {
		d := pages.ParagraphDraft{ID: f.ID, Title: f.Title, Subtitle: f.Subtitle, Content: f.Content}
		if f.ImageIndex != nil && *f.ImageIndex >= 0 && *f.ImageIndex < len(images) {
			img := images[*f.ImageIndex]
			d.Image = &img
		}
		drafts = append(drafts, d)
	}
	e.Paragraphs = drafts
	return nil
}

func (h *handlers) saveArticle(c echo.Context, id string, status int) error {
	cs := sessionFrom(c)
	editor := pages.NewArticleEditor(cs.Runtime)
	if err := editor.Load(c.Request().Context(), id); err != nil {
		return err
	}
	if err := fillArticle(c, editor); err != nil {
		return err
	}
	saved, err := editor.Submit(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, status, saved)
}

func (h *handlers) createArticle(c echo.Context) error {
	return h.saveArticle(c, pages.NewArticleID, http.StatusCreated)
}

func (h *handlers) updateArticle(c echo.Context) error {
	return h.saveArticle(c, c.Param("id"), http.StatusOK)
}

func (h *handlers) deleteArticle(c echo.Context) error {
	cs := sessionFrom(c)
	if err := blog.New(cs.Runtime).Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c, nil)
}

func paragraphInput(c echo.Context) (blog.ParagraphInput, error) {
	in := blog.ParagraphInput{
		Title:    c.FormValue("title"),
		Subtitle: c.FormValue("subtitle"),
		Content:  c.FormValue("content"),
	}
	images, err := multipartFiles(c, "image")
	if err != nil {
		return in, err
	}
	if len(images) > 0 {
		in.Image = &forms.File{Name: images[0].Name, ContentType: images[0].ContentType, Data: images[0].Data}
	}
	return in, nil
}

func (h *handlers) createParagraph(c echo.Context) error {
	cs := sessionFrom(c)
	in, err := paragraphInput(c)
	if err != nil {
		return err
	}
	p, err := blog.New(cs.Runtime).CreateParagraph(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, p)
}

func (h *handlers) updateParagraph(c echo.Context) error {
	cs := sessionFrom(c)
	in, err := paragraphInput(c)
	if err != nil {
		return err
	}
	p, err := blog.New(cs.Runtime).UpdateParagraph(c.Request().Context(), c.Param("id"), c.Param("pid"), in)
	if err != nil {
		return err
	}
	return ok(c, p)
}

func (h *handlers) deleteParagraph(c echo.Context) error {
	cs := sessionFrom(c)
	if err := blog.New(cs.Runtime).DeleteParagraph(c.Request().Context(), c.Param("id"), c.Param("pid")); err != nil {
		return err
	}
	return ok(c, nil)
}

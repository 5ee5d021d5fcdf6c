package pages

import (
	"context"
	"fmt"
	"strings"

	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/common/validation"
	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/internal/resources/blog"
)

// NewArticleID is the route id of the article create form.
const NewArticleID = "create-new"

// ParagraphDraft is one paragraph being edited. ID is empty for new ones.
type ParagraphDraft struct {
	ID       string      `json:"id,omitempty"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Content  string      `json:"content"`
	Image    *forms.File `json:"-"`
}

type paragraphPayload struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Content    string `json:"content"`
	ImageIndex *int   `json:"imageIndex,omitempty"`
}

// ArticleEditor is the blog article form with its paragraphs.
type ArticleEditor struct {
	ID         string
	Article    models.Article
	Thumbnail  *forms.File
	Paragraphs []ParagraphDraft

	rt       *resource.Runtime
	api      *blog.Client
	original map[string]models.Paragraph
}

func NewArticleEditor(rt *resource.Runtime) *ArticleEditor {
	return &ArticleEditor{ID: NewArticleID, rt: rt, api: blog.New(rt)}
}

func (e *ArticleEditor) IsNew() bool {
	return e.ID == "" || e.ID == NewArticleID
}

func (e *ArticleEditor) Load(ctx context.Context, id string) error {
	if id == "" || id == NewArticleID {
		e.reset(NewArticleID, models.Article{})
		return nil
	}
	a, err := e.api.Get(ctx, id)
	if err != nil {
		return err
	}
	e.reset(id, a)
	return nil
}

func (e *ArticleEditor) reset(id string, a models.Article) {
	e.ID = id
	e.Article = a
	e.Thumbnail = nil
	e.Paragraphs = make([]ParagraphDraft, 0, len(a.Paragraphs))
	e.original = make(map[string]models.Paragraph, len(a.Paragraphs))
	for _, p := range a.Paragraphs {
		e.Paragraphs = append(e.Paragraphs, ParagraphDraft{ID: p.ID, Title: p.Title, Subtitle: p.Subtitle, Content: p.Content})
		e.original[p.ID] = p
	}
}

// SetTags parses a comma separated tag list, dropping blanks.
func (e *ArticleEditor) SetTags(csv string) {
	tags := []string{}
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	e.Article.Tags = tags
}

func (e *ArticleEditor) AddParagraph(p ParagraphDraft) {
	p.ID = ""
	e.Paragraphs = append(e.Paragraphs, p)
}

func (e *ArticleEditor) RemoveParagraph(i int) error {
	if i < 0 || i >= len(e.Paragraphs) {
		return apperrors.NewValidationError("paragraph index out of range",
			[]string{fmt.Sprintf("paragraphs: index %d out of range [0, %d)", i, len(e.Paragraphs))})
	}
	e.Paragraphs = append(e.Paragraphs[:i], e.Paragraphs[i+1:]...)
	return nil
}

func (e *ArticleEditor) baseForm() (*forms.Multipart, error) {
	a := e.Article
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	m := forms.New().
		Add("title", a.Title).
		Add("subtitle", a.Subtitle).
		Add("introduction", a.Introduction).
		Add("conclusion", a.Conclusion)
	if err := m.AddJSON("tags", tags); err != nil {
		return nil, err
	}
	if e.Thumbnail != nil {
		thumb := *e.Thumbnail
		thumb.Field = "thumbnail"
		m.AddFile(thumb)
	}
	return m, nil
}

// CreateForm is the multipart body of a new article. Paragraph images are
// sent as paragraphImages and referenced by imageIndex.
func (e *ArticleEditor) CreateForm() (*forms.Multipart, error) {
	m, err := e.baseForm()
	if err != nil {
		return nil, err
	}
	var images []forms.File
	payload := make([]paragraphPayload, 0, len(e.Paragraphs))
	for _, p := range e.Paragraphs {
		pp := paragraphPayload{Title: p.Title, Subtitle: p.Subtitle, Content: p.Content}
		if p.Image != nil {
			idx := len(images)
			pp.ImageIndex = &idx
			img := *p.Image
			img.Field = "paragraphImages"
			images = append(images, img)
		}
		payload = append(payload, pp)
	}
	if err := m.AddJSON("paragraphs", payload); err != nil {
		return nil, err
	}
	for _, img := range images {
		m.AddFile(img)
	}
	return m, nil
}

func (e *ArticleEditor) validate() error {
	if err := validation.ValidateArticle(e.Article); err != nil {
		return err
	}
	for i, p := range e.Paragraphs {
		if err := validation.ValidateParagraph(models.Paragraph{Title: p.Title, Subtitle: p.Subtitle, Content: p.Content}); err != nil {
			if stdErr, ok := apperrors.AsStandardError(err); ok {
				return stdErr.WithMetadata("paragraph", i)
			}
			return err
		}
	}
	return nil
}

// Submit creates the article with its paragraphs, or updates it and then
// creates, updates and deletes paragraphs one by one.
func (e *ArticleEditor) Submit(ctx context.Context) (models.Article, error) {
	op := resource.Mutation{Op: "blog.update", Failure: "Failed to update article"}
	if e.IsNew() {
		op = resource.Mutation{Op: "blog.create", Failure: "Failed to create article"}
	}
	if err := e.validate(); err != nil {
		return models.Article{}, resource.Reject(e.rt, op, err)
	}

	if e.IsNew() {
		form, err := e.CreateForm()
		if err != nil {
			return models.Article{}, resource.Reject(e.rt, op, err)
		}
		created, err := e.api.Create(ctx, form)
		if err != nil {
			return models.Article{}, err
		}
		e.ID = created.ID
		return created, nil
	}

	form, err := e.baseForm()
	if err != nil {
		return models.Article{}, resource.Reject(e.rt, op, err)
	}
	updated, err := e.api.Update(ctx, e.ID, form)
	if err != nil {
		return models.Article{}, err
	}
	if err := e.syncParagraphs(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

func (e *ArticleEditor) syncParagraphs(ctx context.Context) error {
	kept := make(map[string]bool, len(e.Paragraphs))
	for i, p := range e.Paragraphs {
		in := blog.ParagraphInput{Title: p.Title, Subtitle: p.Subtitle, Content: p.Content, Image: p.Image}
		if p.ID == "" {
			created, err := e.api.CreateParagraph(ctx, e.ID, in)
			if err != nil {
				return err
			}
			e.Paragraphs[i].ID = created.ID
			e.Paragraphs[i].Image = nil
			e.original[created.ID] = created
			kept[created.ID] = true
			continue
		}
		kept[p.ID] = true
		orig, ok := e.original[p.ID]
		if ok && p.Image == nil && orig.Title == p.Title && orig.Subtitle == p.Subtitle && orig.Content == p.Content {
			continue
		}
		if _, err := e.api.UpdateParagraph(ctx, e.ID, p.ID, in); err != nil {
			return err
		}
		e.Paragraphs[i].Image = nil
		e.original[p.ID] = models.Paragraph{ID: p.ID, Title: p.Title, Subtitle: p.Subtitle, Content: p.Content}
	}
	for id := range e.original {
		if kept[id] {
			continue
		}
		if err := e.api.DeleteParagraph(ctx, e.ID, id); err != nil {
			return err
		}
		delete(e.original, id)
	}
	return nil
}

func (e *ArticleEditor) Delete(ctx context.Context) error {
	if e.IsNew() {
		return nil
	}
	return e.api.Delete(ctx, e.ID)
}

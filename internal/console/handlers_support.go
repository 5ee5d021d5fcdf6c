package console

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backoffice-console/internal/models"
	"backoffice-console/internal/pages"
	"backoffice-console/internal/resources/faq"
	"backoffice-console/internal/resources/pricing"
	"backoffice-console/internal/resources/support"
)

func (h *handlers) listSupport(c echo.Context) error {
	cs := sessionFrom(c)
	filter := models.SupportFilter{
		Name:         c.QueryParam("name"),
		Email:        c.QueryParam("email"),
		AnsweredByID: c.QueryParam("answeredById"),
		IsSeen:       boolQuery(c, "isSeen"),
		IsAnswered:   boolQuery(c, "isAnswered"),
	}
	for _, cat := range c.QueryParams()["category"] {
		filter.Category = append(filter.Category, models.SupportCategory(cat))
	}

	lp := pages.NewListPage[models.SupportFilter, models.SupportTicket](support.New(cs.Runtime).List, support.FilterQuery)
	lp.Filters.Draft = filter
	lp.Filters.Apply()
	applyPaging(c, lp)

	page, err := lp.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, viewOf(lp, page))
}

func (h *handlers) getSupport(c echo.Context) error {
	cs := sessionFrom(c)
	ticket, err := support.New(cs.Runtime).Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, ticket)
}

func (h *handlers) answerSupport(c echo.Context) error {
	cs := sessionFrom(c)
	files, err := multipartFiles(c, "attachments")
	if err != nil {
		return err
	}
	draft := pages.NewSupportAnswer(cs.Runtime, c.Param("id"))
	draft.Answer = c.FormValue("adminAnswer")
	for _, f := range files {
		draft.Attach(f)
	}
	ticket, err := draft.Submit(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, ticket)
}

func (h *handlers) downloadAttachments(c echo.Context) error {
	cs := sessionFrom(c)
	draft := pages.NewSupportAnswer(cs.Runtime, c.Param("id"))
	blob, err := draft.Download(c.Request().Context(), models.AttachmentSet(c.Param("type")))
	if err != nil {
		return err
	}
	// toasts of a file response stay queued for the next JSON call
	return sendBlob(c, blob)
}

func (h *handlers) getPricing(c echo.Context) error {
	cs := sessionFrom(c)
	p, err := pricing.New(cs.Runtime).Get(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, p)
}

func (h *handlers) updatePricing(c echo.Context) error {
	cs := sessionFrom(c)
	var p models.Pricing
	if err := bindJSON(c, &p); err != nil {
		return err
	}
	saved, err := pricing.New(cs.Runtime).Update(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return ok(c, saved)
}

func (h *handlers) listFAQ(c echo.Context) error {
	cs := sessionFrom(c)
	list, err := faq.New(cs.Runtime).List(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.FAQ{}
	}
	return ok(c, list)
}

func (h *handlers) createFAQ(c echo.Context) error {
	cs := sessionFrom(c)
	var in models.FAQInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	created, err := faq.New(cs.Runtime).Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, created)
}

func (h *handlers) updateFAQ(c echo.Context) error {
	cs := sessionFrom(c)
	var in models.FAQInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	saved, err := faq.New(cs.Runtime).Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return ok(c, saved)
}

func (h *handlers) deleteFAQ(c echo.Context) error {
	cs := sessionFrom(c)
	if err := faq.New(cs.Runtime).Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c, nil)
}

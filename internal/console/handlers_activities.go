package console

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/pages"
	"backoffice-console/internal/resource"
	"backoffice-console/internal/resources/activities"
	"backoffice-console/pkg/query"
)

func activityQuery(f models.ActivityFilter) query.Object {
	obj, err := resource.FilterObject(f)
	if err != nil {
		return nil
	}
	return obj
}

// activityView is the detail form state.
type activityView struct {
	Activity       models.Activity        `json:"activity"`
	Images         []pages.PersistedImage `json:"images"`
	MainImageIndex int                    `json:"mainImageIndex"`
}

func viewOfEditor(e *pages.ActivityEditor) activityView {
	a := e.Form
	a.ID = e.ID
	return activityView{Activity: a, Images: e.Persisted, MainImageIndex: e.MainIndex()}
}

func (h *handlers) listActivities(c echo.Context) error {
	cs := sessionFrom(c)
	lp := pages.NewListPage[models.ActivityFilter, models.Activity](activities.New(cs.Runtime).List, activityQuery)
	lp.Filters.Draft = models.ActivityFilter{
		Search:      c.QueryParam("search"),
		Type:        models.ActivityType(c.QueryParam("type")),
		DurationMin: floatQuery(c, "durationMin"),
		DurationMax: floatQuery(c, "durationMax"),
		IsAvailable: boolQuery(c, "isAvailable"),
	}
	lp.Filters.Apply()
	applyPaging(c, lp)

	page, err := lp.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, viewOf(lp, page))
}

func (h *handlers) getActivity(c echo.Context) error {
	cs := sessionFrom(c)
	editor := pages.NewActivityEditor(cs.Runtime)
	if err := editor.Load(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c, viewOfEditor(editor))
}

// activityFromForm reads the text fields of the multipart create form.
func activityFromForm(c echo.Context) models.Activity {
	a := models.Activity{
		Name:            c.FormValue("name"),
		Description:     c.FormValue("description"),
		Address:         c.FormValue("address"),
		City:            c.FormValue("city"),
		PostalCode:      c.FormValue("postalCode"),
		LocationURL:     c.FormValue("locationUrl"),
		Participants:    intValue(c.FormValue("participants"), 0),
		CreditCost:      intValue(c.FormValue("creditCost"), 0),
		KeyWords:        indexedValues(c, "keyWords"),
		IsInsideCompany: c.FormValue("isInsideCompany") == "true",
		IsAvailable:     c.FormValue("isAvailable") != "false",
	}
	if d, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("duration")), 64); err == nil {
		a.Duration = d
	}
	if form, err := c.MultipartForm(); err == nil {
		for _, t := range form.Value["types[]"] {
			a.Types = append(a.Types, models.ActivityType(t))
		}
	}
	return a
}

// addUploads appends the uploaded images and marks the requested main one.
func addUploads(rt *resource.Runtime, e *pages.ActivityEditor, op resource.Mutation, files []forms.File, mainIndex string) error {
	for _, f := range files {
		if err := e.AddImage(pages.LocalImage{Name: f.Name, ContentType: f.ContentType, Data: f.Data}); err != nil {
			return resource.Reject(rt, op, err)
		}
	}
	if mainIndex == "" || e.ImageCount() == 0 {
		return nil
	}
	idx, err := strconv.Atoi(mainIndex)
	if err != nil {
		idx = 0
	}
	if err := e.SetMain(idx); err != nil {
		return resource.Reject(rt, op, err)
	}
	return nil
}

func (h *handlers) createActivity(c echo.Context) error {
	cs := sessionFrom(c)
	files, err := multipartFiles(c, "images")
	if err != nil {
		return err
	}
	editor := pages.NewActivityEditor(cs.Runtime)
	if err := editor.Load(c.Request().Context(), pages.NewActivityID); err != nil {
		return err
	}
	form := activityFromForm(c)
	editor.Form = form
	editor.SetInsideCompany(form.IsInsideCompany)

	op := resource.Mutation{Op: "activities.create", Failure: "Failed to create activity"}
	if err := addUploads(cs.Runtime, editor, op, files, c.FormValue("mainImageIndex")); err != nil {
		return err
	}
	created, err := editor.Submit(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, created)
}

func (h *handlers) updateActivity(c echo.Context) error {
	cs := sessionFrom(c)
	var body models.Activity
	if err := bindJSON(c, &body); err != nil {
		return err
	}
	editor := pages.NewActivityEditor(cs.Runtime)
	if err := editor.Load(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	body.ID = editor.ID
	editor.Form = body
	editor.SetInsideCompany(body.IsInsideCompany)

	updated, err := editor.Submit(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, updated)
}

func (h *handlers) updateActivityImages(c echo.Context) error {
	cs := sessionFrom(c)
	files, err := multipartFiles(c, "images")
	if err != nil {
		return err
	}
	editor := pages.NewActivityEditor(cs.Runtime)
	if err := editor.Load(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	editor.Retain(indexedValues(c, "retainedImageIds"))

	op := resource.Mutation{Op: "activities.images", Failure: "Failed to update images"}
	if err := addUploads(cs.Runtime, editor, op, files, c.FormValue("mainImageIndex")); err != nil {
		return err
	}
	if err := editor.SaveImages(c.Request().Context()); err != nil {
		return err
	}
	return ok(c, viewOfEditor(editor))
}

func (h *handlers) updateMainImage(c echo.Context) error {
	cs := sessionFrom(c)
	var req models.UpdateMainImageRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if _, err := activities.New(cs.Runtime).UpdateMainImage(c.Request().Context(), c.Param("id"), req.ImageID); err != nil {
		return err
	}
	return ok(c, nil)
}

func (h *handlers) deleteActivity(c echo.Context) error {
	cs := sessionFrom(c)
	if err := activities.New(cs.Runtime).Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c, nil)
}

func (h *handlers) deleteActivityImage(c echo.Context) error {
	cs := sessionFrom(c)
	if err := activities.New(cs.Runtime).DeleteImage(c.Request().Context(), c.Param("id"), c.Param("imageId")); err != nil {
		return err
	}
	return ok(c, nil)
}

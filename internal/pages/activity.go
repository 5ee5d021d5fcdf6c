package pages

import (
	"context"
	"fmt"

	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/common/validation"
	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/internal/resources/activities"
	"backoffice-console/internal/router"
)

const (
	// NewActivityID is the route id of the create form.
	NewActivityID = router.NewActivityID
	// MaxActivityImages bounds persisted plus local images.
	MaxActivityImages = 5
)

// PersistedImage is an image already stored by the backend.
type PersistedImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	IsMain bool   `json:"isMain"`
}

// LocalImage is a file selected in the form and not uploaded yet.
type LocalImage struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"-"`
	IsMain      bool   `json:"isMain"`
}

// ActivityEditor is the activity detail form. Images are addressed by one
// index over Persisted followed by Local.
type ActivityEditor struct {
	ID        string
	Form      models.Activity
	Persisted []PersistedImage
	Local     []LocalImage

	rt          *resource.Runtime
	api         *activities.Client
	imagesDirty bool
	mainDirty   bool
}

func NewActivityEditor(rt *resource.Runtime) *ActivityEditor {
	return &ActivityEditor{ID: NewActivityID, rt: rt, api: activities.New(rt)}
}

func (e *ActivityEditor) IsNew() bool {
	return e.ID == "" || e.ID == NewActivityID
}

// Load fills the form from the backend, or resets it for NewActivityID.
func (e *ActivityEditor) Load(ctx context.Context, id string) error {
	if id == "" || id == NewActivityID {
		e.reset(NewActivityID, models.Activity{})
		return nil
	}
	a, err := e.api.Get(ctx, id)
	if err != nil {
		return err
	}
	e.reset(id, a)
	return nil
}

func (e *ActivityEditor) reset(id string, a models.Activity) {
	e.ID = id
	e.Form = a
	e.Form.Images = nil
	e.Persisted = make([]PersistedImage, 0, len(a.Images))
	for _, img := range a.Images {
		e.Persisted = append(e.Persisted, PersistedImage{ID: img.ID, URL: img.FullURL, IsMain: img.IsMain})
	}
	e.Local = nil
	e.imagesDirty = false
	e.mainDirty = false
}

// SetInsideCompany toggles the on-site flag. On-site activities carry no address.
func (e *ActivityEditor) SetInsideCompany(inside bool) {
	e.Form.IsInsideCompany = inside
	if inside {
		e.Form.Address = ""
		e.Form.City = ""
		e.Form.PostalCode = ""
	}
}

func (e *ActivityEditor) ImageCount() int {
	return len(e.Persisted) + len(e.Local)
}

func (e *ActivityEditor) flag(i int) *bool {
	if i < len(e.Persisted) {
		return &e.Persisted[i].IsMain
	}
	return &e.Local[i-len(e.Persisted)].IsMain
}

func (e *ActivityEditor) checkIndex(i int) error {
	if i < 0 || i >= e.ImageCount() {
		return apperrors.NewValidationError("image index out of range",
			[]string{fmt.Sprintf("images: index %d out of range [0, %d)", i, e.ImageCount())})
	}
	return nil
}

// AddImage appends a local file. The first image of an empty list is main.
func (e *ActivityEditor) AddImage(img LocalImage) error {
	if e.ImageCount() >= MaxActivityImages {
		return apperrors.NewValidationError("too many images",
			[]string{fmt.Sprintf("images: at most %d images per activity", MaxActivityImages)})
	}
	img.IsMain = e.ImageCount() == 0
	e.Local = append(e.Local, img)
	e.imagesDirty = true
	return nil
}

// SetMain marks image i as main and clears the flag everywhere else.
func (e *ActivityEditor) SetMain(i int) error {
	if err := e.checkIndex(i); err != nil {
		return err
	}
	for j := 0; j < e.ImageCount(); j++ {
		*e.flag(j) = j == i
	}
	e.mainDirty = true
	return nil
}

// RemoveImage drops image i. When it was main the first remaining image
// becomes main.
func (e *ActivityEditor) RemoveImage(i int) error {
	if err := e.checkIndex(i); err != nil {
		return err
	}
	wasMain := *e.flag(i)
	if i < len(e.Persisted) {
		e.Persisted = append(e.Persisted[:i], e.Persisted[i+1:]...)
	} else {
		j := i - len(e.Persisted)
		e.Local = append(e.Local[:j], e.Local[j+1:]...)
	}
	e.imagesDirty = true
	if wasMain && e.ImageCount() > 0 {
		return e.SetMain(0)
	}
	return nil
}

// MainIndex is the combined index of the main image, -1 without images.
func (e *ActivityEditor) MainIndex() int {
	for i := 0; i < e.ImageCount(); i++ {
		if *e.flag(i) {
			return i
		}
	}
	return -1
}

func (e *ActivityEditor) mainIndexField() int {
	if i := e.MainIndex(); i >= 0 {
		return i
	}
	return 0
}

func (e *ActivityEditor) addLocalFiles(m *forms.Multipart) {
	for _, img := range e.Local {
		m.AddFile(forms.File{Field: "images", Name: img.Name, ContentType: img.ContentType, Data: img.Data})
	}
}

// CreateForm is the multipart body of a new activity.
func (e *ActivityEditor) CreateForm() *forms.Multipart {
	a := e.Form
	types := make([]string, len(a.Types))
	for i, t := range a.Types {
		types[i] = string(t)
	}
	m := forms.New().
		Add("name", a.Name).
		Add("description", a.Description).
		Add("address", a.Address).
		Add("city", a.City).
		Add("postalCode", a.PostalCode).
		Add("locationUrl", a.LocationURL).
		AddFloat("duration", a.Duration).
		AddInt("participants", a.Participants).
		AddBool("isInsideCompany", a.IsInsideCompany).
		AddInt("creditCost", a.CreditCost).
		AddRepeated("types[]", types).
		AddIndexed("keyWords", a.KeyWords)
	e.addLocalFiles(m)
	m.AddInt("mainImageIndex", e.mainIndexField())
	return m
}

// ImagesForm is the body of the image set update of an existing activity.
func (e *ActivityEditor) ImagesForm() *forms.Multipart {
	ids := make([]string, len(e.Persisted))
	for i, img := range e.Persisted {
		ids[i] = img.ID
	}
	m := forms.New().AddIndexed("retainedImageIds", ids)
	e.addLocalFiles(m)
	m.AddInt("mainImageIndex", e.mainIndexField())
	return m
}

// Submit validates then creates or updates the activity. An existing
// activity gets the JSON update first, then its image set or main image when
// those changed.
func (e *ActivityEditor) Submit(ctx context.Context) (models.Activity, error) {
	op := resource.Mutation{Op: "activities.update", Failure: "Failed to update activity"}
	if e.IsNew() {
		op = resource.Mutation{Op: "activities.create", Failure: "Failed to create activity"}
	}
	if err := validation.ValidateActivity(e.Form); err != nil {
		return models.Activity{}, resource.Reject(e.rt, op, err)
	}

	if e.IsNew() {
		created, err := e.api.Create(ctx, e.CreateForm())
		if err != nil {
			return models.Activity{}, err
		}
		e.reset(created.ID, created)
		return created, nil
	}

	updated, err := e.api.Update(ctx, e.ID, e.Form.Input())
	if err != nil {
		return models.Activity{}, err
	}
	if err := e.SaveImages(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// SaveImages sends the image set of an existing activity when it changed,
// or only the main image when that is the sole change.
func (e *ActivityEditor) SaveImages(ctx context.Context) error {
	if e.IsNew() {
		return nil
	}
	switch {
	case e.imagesDirty:
		if _, err := e.api.UpdateImages(ctx, e.ID, e.ImagesForm()); err != nil {
			return err
		}
	case e.mainDirty:
		if i := e.MainIndex(); i >= 0 && i < len(e.Persisted) {
			if _, err := e.api.UpdateMainImage(ctx, e.ID, e.Persisted[i].ID); err != nil {
				return err
			}
		}
	}
	e.imagesDirty = false
	e.mainDirty = false
	return nil
}

// Retain keeps only the persisted images whose id is listed, in list order.
func (e *ActivityEditor) Retain(ids []string) {
	byID := make(map[string]PersistedImage, len(e.Persisted))
	for _, img := range e.Persisted {
		byID[img.ID] = img
	}
	kept := make([]PersistedImage, 0, len(ids))
	hadMain := e.MainIndex() >= 0
	for _, id := range ids {
		if img, ok := byID[id]; ok {
			kept = append(kept, img)
		}
	}
	if len(kept) != len(e.Persisted) {
		e.imagesDirty = true
	} else {
		for i := range kept {
			if kept[i].ID != e.Persisted[i].ID {
				e.imagesDirty = true
				break
			}
		}
	}
	e.Persisted = kept
	if hadMain && e.MainIndex() < 0 && e.ImageCount() > 0 {
		_ = e.SetMain(0)
	}
}

// Delete removes the activity.
func (e *ActivityEditor) Delete(ctx context.Context) error {
	if e.IsNew() {
		return nil
	}
	return e.api.Delete(ctx, e.ID)
}

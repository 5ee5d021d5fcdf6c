package console

import (
	"github.com/labstack/echo/v4"

	"backoffice-console/internal/models"
	"backoffice-console/internal/pages"
	"backoffice-console/internal/resources/companies"
	"backoffice-console/internal/resources/schedules"
)

// companyPatch carries the fields the edit form touched.
type companyPatch struct {
	Name            *string `json:"name"`
	Address         *string `json:"address"`
	City            *string `json:"city"`
	PostalCode      *string `json:"postalCode"`
	Phone           *string `json:"phone"`
	EmployeesNumber *int    `json:"employeesNumber"`
	Credit          *int    `json:"credit"`
	IsVerified      *bool   `json:"isVerified"`
}

func (p companyPatch) apply(c *models.Company) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&c.Name, p.Name)
	setString(&c.Address, p.Address)
	setString(&c.City, p.City)
	setString(&c.PostalCode, p.PostalCode)
	setString(&c.Phone, p.Phone)
	if p.EmployeesNumber != nil {
		c.EmployeesNumber = *p.EmployeesNumber
	}
	if p.Credit != nil {
		c.Credit = *p.Credit
	}
	if p.IsVerified != nil {
		c.IsVerified = *p.IsVerified
	}
}

func (h *handlers) listClients(c echo.Context) error {
	cs := sessionFrom(c)
	lp := pages.NewListPage[models.CompanyFilter, models.Company](companies.New(cs.Runtime).List, companies.FilterQuery)
	lp.Filters.Draft = models.CompanyFilter{Name: c.QueryParam("name"), IsVerified: boolQuery(c, "isVerified")}
	lp.Filters.Apply()
	applyPaging(c, lp)

	page, err := lp.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, viewOf(lp, page))
}

func (h *handlers) getClient(c echo.Context) error {
	cs := sessionFrom(c)
	company, err := companies.New(cs.Runtime).Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, company)
}

func (h *handlers) updateClient(c echo.Context) error {
	cs := sessionFrom(c)
	var patch companyPatch
	if err := bindJSON(c, &patch); err != nil {
		return err
	}
	editor := pages.NewCompanyEditor(cs.Runtime)
	if err := editor.Load(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	patch.apply(&editor.Draft)
	saved, err := editor.Save(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, saved)
}

func (h *handlers) verifyClient(c echo.Context) error {
	cs := sessionFrom(c)
	if err := companies.New(cs.Runtime).Verify(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c, nil)
}

func (h *handlers) listSchedules(c echo.Context) error {
	cs := sessionFrom(c)
	list, err := schedules.New(cs.Runtime).ListByCompany(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.Schedule{}
	}
	return ok(c, list)
}

func (h *handlers) getSchedule(c echo.Context) error {
	cs := sessionFrom(c)
	s, err := schedules.New(cs.Runtime).Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, s)
}

func (h *handlers) updateSchedule(c echo.Context) error {
	cs := sessionFrom(c)
	var update models.ScheduleUpdate
	if err := bindJSON(c, &update); err != nil {
		return err
	}
	s, err := schedules.New(cs.Runtime).Update(c.Request().Context(), c.Param("id"), update)
	if err != nil {
		return err
	}
	return ok(c, s)
}

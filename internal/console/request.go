package console

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/pages"
	"backoffice-console/internal/resource"
)

const (
	contentTypeJSON = "application/json"
	maxJSONBytes    = 1 << 20
)

type handlers struct {
	log logger.Logger
}

func bindJSON(c echo.Context, dst interface{}) error {
	if !strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "content type must be application/json")
	}
	dec := json.NewDecoder(io.LimitReader(c.Request().Body, maxJSONBytes))
	if err := dec.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func boolQuery(c echo.Context, name string) *bool {
	v, err := strconv.ParseBool(c.QueryParam(name))
	if err != nil {
		return nil
	}
	return &v
}

func floatQuery(c echo.Context, name string) *float64 {
	v, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil {
		return nil
	}
	return &v
}

func intValue(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}

// applyPaging reads page, take and sort ("field:DESC,other") into a list page.
func applyPaging[F any, T any](c echo.Context, lp *pages.ListPage[F, T]) {
	lp.Pager.SetTake(intValue(c.QueryParam("take"), resource.DefaultTake))
	if page := intValue(c.QueryParam("page"), 1); page > 1 {
		lp.Pager.Page = page
	}
	for _, part := range strings.Split(c.QueryParam("sort"), ",") {
		field, order, _ := strings.Cut(strings.TrimSpace(part), ":")
		if field == "" {
			continue
		}
		sf := resource.SortField{Field: field, Order: models.SortASC}
		if strings.EqualFold(order, string(models.SortDESC)) {
			sf.Order = models.SortDESC
		}
		lp.Sort = append(lp.Sort, sf)
	}
}

// listView is a loaded table with its navigation state.
type listView[T any] struct {
	Rows        []T             `json:"rows"`
	Meta        models.PageMeta `json:"meta"`
	Page        int             `json:"page"`
	Take        int             `json:"take"`
	CanNext     bool            `json:"canNext"`
	CanPrevious bool            `json:"canPrevious"`
}

func viewOf[F any, T any](lp *pages.ListPage[F, T], page models.Page[T]) listView[T] {
	rows := page.Data
	if rows == nil {
		rows = []T{}
	}
	return listView[T]{
		Rows:        rows,
		Meta:        page.Meta,
		Page:        lp.Pager.Page,
		Take:        lp.Pager.Take,
		CanNext:     lp.Pager.CanNext(),
		CanPrevious: lp.Pager.CanPrevious(),
	}
}

func multipartFiles(c echo.Context, field string) ([]forms.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body")
	}
	headers := form.File[field]
	out := make([]forms.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
		}
		out = append(out, forms.File{
			Field:       field,
			Name:        fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Data:        data,
		})
	}
	return out, nil
}

// indexedValues collects key[0], key[1]... from a form in index order.
// Gaps and empty values are skipped.
func indexedValues(c echo.Context, key string) []string {
	form, err := c.FormParams()
	if err != nil {
		return nil
	}
	type indexed struct {
		n int
		v string
	}
	var found []indexed
	prefix := key + "["
	for name, values := range form {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, "]") {
			continue
		}
		n, err := strconv.Atoi(name[len(prefix) : len(name)-1])
		if err != nil || n < 0 || len(values) == 0 || values[0] == "" {
			continue
		}
		found = append(found, indexed{n: n, v: values[0]})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	var out []string
	for _, f := range found {
		out = append(out, f.v)
	}
	return out
}

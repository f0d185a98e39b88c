package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lumenlabs/webmart/internal/admin"
	"github.com/lumenlabs/webmart/internal/store"
	"github.com/lumenlabs/webmart/internal/webserver"
)

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := map[string]interface{}{
		"code":    code,
		"message": message,
	}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

type pagedResult struct {
	Items   interface{} `json:"items"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, pagedResult{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

// GetStore returns the catalog store from the request context.
func GetStore(c echo.Context) *store.CatalogStore {
	return webserver.GetAppContext(c).Store()
}

// GetAdmin returns the admin controller from the request context.
func GetAdmin(c echo.Context) *admin.Controller {
	return webserver.GetAppContext(c).AdminController()
}

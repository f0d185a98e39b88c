package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lumenlabs/webmart/internal/admin"
	"github.com/lumenlabs/webmart/internal/store"
	"github.com/lumenlabs/webmart/internal/webserver"
)

// InitRouter registers the admin product CRUD endpoints.
func InitRouter() {
	webserver.ApiGET("/admin/products", listProducts)
	webserver.ApiGET("/admin/products/:id", getProduct)
	webserver.ApiGET("/admin/products/:id/form", getProductForm)
	webserver.ApiPOST("/admin/products", createProduct)
	webserver.ApiPUT("/admin/products/:id", updateProduct)
	webserver.ApiDELETE("/admin/products/:id", deleteProduct)

	registerAnalyticsRoutes()
	registerUploadRoutes()
}

// listProducts renders the admin grid: product cards joined with
// sales stats, restricted by the q search term.
func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	view := GetAdmin(c).Cards(c.QueryParam("q"))

	total := int64(len(view.Cards))
	start := (page - 1) * pageSize
	if start > len(view.Cards) {
		start = len(view.Cards)
	}
	end := start + pageSize
	if end > len(view.Cards) {
		end = len(view.Cards)
	}

	return paged(c, map[string]interface{}{
		"cards":       view.Cards[start:end],
		"placeholder": view.Placeholder,
	}, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, ok2 := GetStore(c).Get(id)
	if !ok2 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

// getProductForm returns the edit form pre-filled from the stored
// product, one spec row per entry (or a single blank row).
func getProductForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	form, found := GetAdmin(c).EditForm(id)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, form)
}

func createProduct(c echo.Context) error {
	var form admin.ProductForm
	if err := c.Bind(&form); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := GetAdmin(c).Create(form)
	if errors.Is(err, admin.ErrValidation) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var form admin.ProductForm
	if err := c.Bind(&form); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := GetAdmin(c).Update(id, form)
	switch {
	case errors.Is(err, admin.ErrValidation):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, store.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

// deleteProduct removes a product and its sales record. The confirm
// query parameter stands in for the interactive confirmation dialog.
func deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	confirmed := c.QueryParam("confirm") == "true"
	err = GetAdmin(c).Delete(id, confirmed)
	switch {
	case errors.Is(err, admin.ErrConfirmationRequired):
		return fail(c, http.StatusBadRequest, "CONFIRM_REQUIRED", "Deletion requires confirm=true", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

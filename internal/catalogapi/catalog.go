package catalogapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lumenlabs/webmart/internal/catalog"
	"github.com/lumenlabs/webmart/internal/domain"
	"github.com/lumenlabs/webmart/internal/store"
	"github.com/lumenlabs/webmart/internal/webserver"
)

// InitRouter registers the shopper-facing catalog endpoints.
func InitRouter() {
	webserver.ApiGET("/catalog/products", browseProducts)
	webserver.ApiGET("/catalog/detail", getDetail)
	webserver.ApiPOST("/catalog/detail/:id/open", openDetail)
	webserver.ApiPOST("/catalog/detail/close", closeDetail)
	webserver.ApiPOST("/catalog/detail/quantity/increment", incrementQuantity)
	webserver.ApiPOST("/catalog/detail/quantity/decrement", decrementQuantity)
	webserver.ApiPUT("/catalog/detail/quantity", setQuantity)
	webserver.ApiPOST("/catalog/detail/buy", buyNow)
	webserver.ApiPOST("/catalog/detail/save", saveForLater)
	webserver.ApiGET("/catalog/cart", getCart)
	webserver.ApiGET("/catalog/saved", getSavedItems)
	webserver.ApiGET("/catalog/notifications", getNotifications)
}

func getController(c echo.Context) *catalog.Controller {
	return webserver.GetAppContext(c).CatalogController()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
	})
}

// browseProducts runs the filter/sort pipeline over the catalog.
func browseProducts(c echo.Context) error {
	var q catalog.Query
	if err := c.Bind(&q); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse query")
	}
	return ok(c, getController(c).Browse(q))
}

func openDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	d, found := getController(c).OpenDetail(id)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}
	return ok(c, d)
}

func getDetail(c echo.Context) error {
	d, open := getController(c).Detail()
	if !open {
		return fail(c, http.StatusNotFound, "DETAIL_CLOSED", "No detail view is open")
	}
	return ok(c, d)
}

func closeDetail(c echo.Context) error {
	getController(c).CloseDetail()
	return ok(c, map[string]string{"state": "closed"})
}

func incrementQuantity(c echo.Context) error {
	return ok(c, map[string]int{"quantity": getController(c).Increment()})
}

func decrementQuantity(c echo.Context) error {
	return ok(c, map[string]int{"quantity": getController(c).Decrement()})
}

type quantityPayload struct {
	Value int `json:"value" form:"value"`
}

func setQuantity(c echo.Context) error {
	var payload quantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity")
	}
	return ok(c, map[string]int{"quantity": getController(c).SetQuantity(payload.Value)})
}

// buyNow commits the open detail view and reports the new cart total.
func buyNow(c echo.Context) error {
	total, err := getController(c).BuyNow()
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "DETAIL_CLOSED", "No detail view is open")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to complete purchase")
	}
	return ok(c, map[string]int{"cart_units": total})
}

func saveForLater(c echo.Context) error {
	err := getController(c).SaveForLater()
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "DETAIL_CLOSED", "No detail view is open")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save item")
	}
	return ok(c, map[string]string{"state": "saved"})
}

func getCart(c echo.Context) error {
	lines := webserver.GetAppContext(c).Store().Cart()
	return ok(c, map[string]interface{}{
		"lines": lines,
		"units": domain.CartUnits(lines),
	})
}

func getSavedItems(c echo.Context) error {
	return ok(c, webserver.GetAppContext(c).Store().SavedItems())
}

func getNotifications(c echo.Context) error {
	return ok(c, webserver.GetAppContext(c).CatalogNotifier().Active())
}

package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumenlabs/webmart/internal/webserver"
)

func registerAnalyticsRoutes() {
	webserver.ApiGET("/admin/analytics", getAnalytics)
	webserver.ApiGET("/admin/notifications", getNotifications)
	webserver.ApiGET("/admin/export/products.csv", exportProductsCSV)
	webserver.ApiGET("/admin/export/sales.csv", exportSalesCSV)
}

// getAnalytics returns the sales dashboard: total revenue, units sold
// and the top-selling product.
func getAnalytics(c echo.Context) error {
	return ok(c, GetAdmin(c).Analytics())
}

// getNotifications returns the popups currently on screen.
func getNotifications(c echo.Context) error {
	return ok(c, webserver.GetAppContext(c).AdminNotifier().Active())
}

func exportProductsCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return GetAdmin(c).ExportProductsCSV(c.Response())
}

func exportSalesCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="sales.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return GetAdmin(c).ExportSalesCSV(c.Response())
}

package catalogapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/webmart/config"
	"github.com/lumenlabs/webmart/internal/app"
	"github.com/lumenlabs/webmart/internal/domain"
	"github.com/lumenlabs/webmart/internal/store"
	"github.com/lumenlabs/webmart/internal/webserver"
)

func newTestServer(t *testing.T, seed ...domain.Product) (*echo.Echo, *app.Application) {
	t.Helper()

	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Logger.FileEnable = false

	application := app.NewApplication(cfg)
	application.Init(cfg)
	t.Cleanup(application.Release)

	st := store.NewCatalogStore(store.NewMemoryBackend(), EventBus.New())
	st.SetSeed(seed)
	require.NoError(t, st.Load())
	application.OverrideStore(st)

	webserver.Init(application)
	InitRouter()
	return webserver.Echo(), application
}

func doJSON(t *testing.T, e *echo.Echo, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Aurora Lamp", Category: "lighting", Price: 49.9, Description: "warm glow"},
		{ID: 2, Name: "Fjord Chair", Category: "furniture", Price: 120, Description: "solid oak"},
	}
}

func TestBrowseEndpoint(t *testing.T) {
	e, _ := newTestServer(t, testCatalog()...)

	rec := doJSON(t, e, http.MethodGet, "/api/catalog/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tiles []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tiles))
	assert.Len(t, tiles, 2)

	rec = doJSON(t, e, http.MethodGet, "/api/catalog/products?category=furniture&sort=price-low", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tiles))
	require.Len(t, tiles, 1)
	assert.Equal(t, "Fjord Chair", tiles[0]["name"])
}

func TestDetailLifecycleOverHTTP(t *testing.T) {
	e, _ := newTestServer(t, testCatalog()...)

	// nothing open yet
	rec := doJSON(t, e, http.MethodGet, "/api/catalog/detail", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "DETAIL_CLOSED", decodeBody(t, rec)["code"])

	rec = doJSON(t, e, http.MethodPost, "/api/catalog/detail/1/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["quantity"])

	rec = doJSON(t, e, http.MethodPost, "/api/catalog/detail/quantity/increment", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeBody(t, rec)["quantity"])

	rec = doJSON(t, e, http.MethodPut, "/api/catalog/detail/quantity", map[string]int{"value": 150})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(99), decodeBody(t, rec)["quantity"])

	rec = doJSON(t, e, http.MethodPost, "/api/catalog/detail/close", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/catalog/detail", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/catalog/detail/999/open", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuyNowOverHTTP(t *testing.T) {
	e, application := newTestServer(t, testCatalog()...)

	// buying with no open detail is refused
	rec := doJSON(t, e, http.MethodPost, "/api/catalog/detail/buy", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/catalog/detail/1/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodPut, "/api/catalog/detail/quantity", map[string]int{"value": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/catalog/detail/buy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decodeBody(t, rec)["cart_units"])

	rec = doJSON(t, e, http.MethodGet, "/api/catalog/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["units"])
	lines := body["lines"].([]interface{})
	require.Len(t, lines, 1)

	rec = doJSON(t, e, http.MethodGet, "/api/catalog/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	require.Len(t, active, 1)
	assert.Equal(t, "Added to Cart", active[0]["title"])

	rec = doJSON(t, e, http.MethodGet, "/api/catalog/detail", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "purchase closes the detail view")

	assert.Equal(t, 3, application.Store().Sales()[1].Quantity)
}

func TestSaveForLaterOverHTTP(t *testing.T) {
	e, application := newTestServer(t, testCatalog()...)

	rec := doJSON(t, e, http.MethodPost, "/api/catalog/detail/save", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/catalog/detail/2/open", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, e, http.MethodPost, "/api/catalog/detail/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/catalog/saved", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Fjord Chair", items[0]["name"])

	require.Len(t, application.Store().SavedItems(), 1)
}

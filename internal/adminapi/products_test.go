package adminapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/webmart/config"
	"github.com/lumenlabs/webmart/internal/app"
	"github.com/lumenlabs/webmart/internal/store"
	"github.com/lumenlabs/webmart/internal/webserver"
)

func newTestServer(t *testing.T) (*echo.Echo, *app.Application) {
	t.Helper()

	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Logger.FileEnable = false

	application := app.NewApplication(cfg)
	application.Init(cfg)
	t.Cleanup(application.Release)

	// swap in an empty memory-backed store for determinism
	st := store.NewCatalogStore(store.NewMemoryBackend(), EventBus.New())
	st.SetSeed(nil)
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

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Aurora Lamp",
		"category":    "lighting",
		"price":       "49.99",
		"description": "warm glow",
	}
}

func TestProductCRUDOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)

	// empty catalog renders its placeholder
	rec := doJSON(t, e, http.MethodGet, "/api/admin/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["items"].(map[string]interface{})
	assert.Equal(t, "empty-catalog", items["placeholder"])

	rec = doJSON(t, e, http.MethodPost, "/api/admin/products", validPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["id"])

	rec = doJSON(t, e, http.MethodGet, "/api/admin/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Aurora Lamp", decodeBody(t, rec)["name"])

	payload := validPayload()
	payload["price"] = "39.99"
	rec = doJSON(t, e, http.MethodPut, "/api/admin/products/1", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 39.99, decodeBody(t, rec)["price"])

	// deleting without confirmation is refused
	rec = doJSON(t, e, http.MethodDelete, "/api/admin/products/1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CONFIRM_REQUIRED", decodeBody(t, rec)["code"])

	rec = doJSON(t, e, http.MethodDelete, "/api/admin/products/1?confirm=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/admin/products/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRejectsInvalidForm(t *testing.T) {
	e, _ := newTestServer(t)

	payload := validPayload()
	payload["price"] = "free"
	rec := doJSON(t, e, http.MethodPost, "/api/admin/products", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeBody(t, rec)["code"])
}

func TestUpdateUnknownProductOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPut, "/api/admin/products/42", validPayload())
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, rec)["code"])

	rec = doJSON(t, e, http.MethodGet, "/api/admin/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsEndpoint(t *testing.T) {
	e, application := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/admin/products", validPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, application.Store().TrackSale(1, 3, 49.99))

	rec = doJSON(t, e, http.MethodGet, "/api/admin/analytics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["product_count"])
	assert.Equal(t, float64(3), body["total_units"])
	top := body["top_product"].(map[string]interface{})
	assert.Equal(t, "Aurora Lamp", top["name"])
}

func TestNotificationsEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/admin/products", validPayload())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/admin/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	require.Len(t, active, 1)
	assert.Equal(t, "Product added successfully!", active[0]["message"])
}

func TestExportEndpoints(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/admin/products", validPayload())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/admin/export/products.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "products.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "id,name,category,"))
}

func TestUploadEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "photo.bin")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0x01, 0x02, 0x03, 0x04})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	dataURL := decodeBody(t, rec)["data_url"].(string)
	assert.True(t, strings.HasPrefix(dataURL, "data:"))
	assert.Contains(t, dataURL, ";base64,AQIDBA==")

	// missing file field
	rec = doJSON(t, e, http.MethodPost, "/api/admin/upload", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

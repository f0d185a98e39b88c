package adminapi

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumenlabs/webmart/internal/webserver"
)

// 4 MiB, generous for a product photo
const maxUploadBytes = 4 << 20

func registerUploadRoutes() {
	webserver.ApiPOST("/admin/upload", uploadImage)
}

// uploadImage converts an uploaded image file into a data URL, the
// value the product form persists when a file was chosen instead of a
// plain image URL.
func uploadImage(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing file field", nil)
	}
	if fh.Size > maxUploadBytes {
		return fail(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Image exceeds the upload limit", nil)
	}

	f, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to read upload", err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to read upload", err.Error())
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	return ok(c, map[string]string{
		"data_url": "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	})
}

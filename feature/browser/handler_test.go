package browser_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"scene-editor/core/assets"
	"scene-editor/core/storage/mocks"
	"scene-editor/feature/browser"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, client *mocks.Client, handlers map[string]assets.Handler) (*fiber.App, *browser.Service) {
	t.Helper()
	svc, _ := newTestService(t, client, handlers)
	app := fiber.New()
	browser.NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

func TestHandleList(t *testing.T) {
	app, _ := newTestApp(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": &stubHandler{items: []assets.Item{
			{ID: "1", Key: "wood.png"},
			{ID: "2", Key: "stone.png"},
		}},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/assets", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string][]assets.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body["textures"], 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/assets?filter=wood", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body["textures"], 1)
}

func TestHandleHandlers(t *testing.T) {
	app, _ := newTestApp(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": &stubHandler{items: []assets.Item{{ID: "1", Key: "wood.png"}}},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/assets/handlers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "textures", body[0]["identifier"])
	assert.Equal(t, true, body[0]["live"])
	assert.Equal(t, float64(1), body[0]["items"])
	assert.NotEmpty(t, body[0]["id"])
}

func TestHandleRefresh(t *testing.T) {
	target := &stubHandler{}
	app, _ := newTestApp(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": target,
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/assets/refresh?target=textures", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, target.refreshCount())

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "refreshed", body["status"])
}

func TestHandleIngest(t *testing.T) {
	target := &dropHandler{}
	app, _ := newTestApp(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": target,
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("files", "wood.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("pngbytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/assets/ingest", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, target.dropped, 1)
	assert.Equal(t, "wood.png", target.dropped[0][0].Name)
	assert.Equal(t, []byte("pngbytes"), target.dropped[0][0].Data)
}

func TestHandleIngest_NoFiles(t *testing.T) {
	app, _ := newTestApp(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": &dropHandler{},
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/assets/ingest", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleClean(t *testing.T) {
	cleaner := &cleanHandler{}
	app, _ := newTestApp(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": cleaner,
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/assets/clean", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, cleaner.cleans)
}

func TestHandleSnapshotRoundTrip(t *testing.T) {
	client := &mocks.Client{}
	textures := &stubHandler{items: []assets.Item{{ID: "1", Key: "wood.png"}}}
	app, _ := newTestApp(t, client, map[string]assets.Handler{
		"textures": textures,
	})

	// GET returns the live capture without touching storage.
	resp, err := app.Test(httptest.NewRequest("GET", "/assets/snapshot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var snap map[string][]assets.ItemRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.Len(t, snap["textures"], 1)

	// POST persists it.
	client.On("PutObject", mock.Anything, "scene", "project/assets.json",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	resp, err = app.Test(httptest.NewRequest("POST", "/assets/snapshot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Restore feeds the stored document back into the handlers.
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	client.On("GetObject", mock.Anything, "scene", "project/assets.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)

	textures.ReplaceItems(nil)
	resp, err = app.Test(httptest.NewRequest("POST", "/assets/restore", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, textures.Items(), 1)

	// Expectation matching formats the captured request contexts, so it
	// must run only after the last request; fiber pools and reuses them.
	client.AssertExpectations(t)
}

func TestHandleFilter(t *testing.T) {
	filterable := &filterHandler{}
	app, _ := newTestApp(t, &mocks.Client{}, map[string]assets.Handler{
		"textures": filterable,
	})

	req := httptest.NewRequest("PUT", "/assets/filter", strings.NewReader(`{"text":"wood"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "wood", filterable.filter)
}

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileData struct {
	ID           uint   `json:"id"`
	OriginalName string `json:"originalName"`
	FileName     string `json:"fileName"`
	Extension    string `json:"extension"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
}

func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func uploadFile(t *testing.T, app *fiber.App, token, fileName string, content []byte) fileData {
	t.Helper()

	body, contentType := multipartBody(t, "file", fileName, content)
	req := httptest.NewRequest(http.MethodPost, "/file/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data fileData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func TestFileUpload(t *testing.T) {
	app := newTestApp(t)
	token, _ := signupAndSignin(t, app, "uploader@example.com", "password1", "d1")

	content := []byte("uploaded bytes")
	data := uploadFile(t, app, token, "doc.txt", content)

	assert.NotZero(t, data.ID)
	assert.Equal(t, "doc.txt", data.OriginalName)
	assert.Equal(t, ".txt", data.Extension)
	assert.Equal(t, int64(len(content)), data.Size)
	assert.NotEmpty(t, data.FileName)
}

func TestFileUpload_NoFileField(t *testing.T) {
	app := newTestApp(t)
	token, _ := signupAndSignin(t, app, "nofile@example.com", "password1", "d1")

	body, contentType := multipartBody(t, "attachment", "doc.txt", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/file/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFileUpload_RequiresAuth(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartBody(t, "file", "doc.txt", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/file/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestFileGet(t *testing.T) {
	app := newTestApp(t)
	token, _ := signupAndSignin(t, app, "getter@example.com", "password1", "d1")

	data := uploadFile(t, app, token, "get-me.txt", []byte("content"))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/file/%d", data.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var got fileData
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, data.ID, got.ID)

	// Missing id is an explicit 404, not an empty success.
	req = httptest.NewRequest(http.MethodGet, "/file/99999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFileList(t *testing.T) {
	app := newTestApp(t)
	token, _ := signupAndSignin(t, app, "lister@example.com", "password1", "d1")

	for i := 0; i < 5; i++ {
		uploadFile(t, app, token, fmt.Sprintf("f%d.txt", i), []byte("content"))
	}

	req := httptest.NewRequest(http.MethodGet, "/file/list?list_size=2&page=2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data struct {
		Page       int        `json:"page"`
		ListSize   int        `json:"listSize"`
		TotalPages int        `json:"totalPages"`
		TotalRows  int64      `json:"totalRows"`
		Files      []fileData `json:"files"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, 2, data.Page)
	assert.Equal(t, 2, data.ListSize)
	assert.Equal(t, 3, data.TotalPages)
	assert.Equal(t, int64(5), data.TotalRows)
	assert.Len(t, data.Files, 2)
}

func TestFileList_Defaults(t *testing.T) {
	app := newTestApp(t)
	token, _ := signupAndSignin(t, app, "defaults@example.com", "password1", "d1")

	req := httptest.NewRequest(http.MethodGet, "/file/list?list_size=abc&page=xyz", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var data struct {
		Page     int `json:"page"`
		ListSize int `json:"listSize"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Page)
	assert.Equal(t, 10, data.ListSize)
}

func TestFileUpdate(t *testing.T) {
	app := newTestApp(t)
	token, _ := signupAndSignin(t, app, "updater@example.com", "password1", "d1")

	data := uploadFile(t, app, token, "before.txt", []byte("before"))

	body, contentType := multipartBody(t, "file", "after.md", []byte("after content"))
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/file/update/%d", data.ID), body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Unknown id
	body, contentType = multipartBody(t, "file", "after.md", []byte("x"))
	req = httptest.NewRequest(http.MethodPut, "/file/update/99999", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFileDelete_TwiceFails(t *testing.T) {
	app := newTestApp(t)
	token, _ := signupAndSignin(t, app, "deleter@example.com", "password1", "d1")

	data := uploadFile(t, app, token, "bye.txt", []byte("bye"))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/file/delete/%d", data.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/file/delete/%d", data.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFileDownload(t *testing.T) {
	app := newTestApp(t)
	token, _ := signupAndSignin(t, app, "downloader@example.com", "password1", "d1")

	content := []byte("download payload")
	data := uploadFile(t, app, token, "dl.txt", content)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/file/download/%d", data.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "dl.txt")

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

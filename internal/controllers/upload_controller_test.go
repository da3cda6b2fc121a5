package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

// fakeStorage records calls; enabled=false mimics a deployment without
// S3 credentials.
type fakeStorage struct {
	enabled bool
	uploads int
	deleted []string
}

func (f *fakeStorage) Enabled() bool { return f.enabled }

func (f *fakeStorage) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, string, error) {
	f.uploads++
	return folder + "/" + filename, "https://cdn.example.com/" + folder + "/" + filename, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func imageUploadRequest(t *testing.T) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="villa.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/v1/upload/image", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestUploadImageStorageDisabled(t *testing.T) {
	storage := &fakeStorage{enabled: false}
	ctrl := NewUploadController(storage)

	rec := httptest.NewRecorder()
	ctrl.UploadImage(rec, imageUploadRequest(t))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, utils.ErrCodeExternalServiceFailure, resp.Error.Code)
	assert.Zero(t, storage.uploads)
}

func TestDeleteStorageDisabled(t *testing.T) {
	storage := &fakeStorage{enabled: false}
	ctrl := NewUploadController(storage)

	r := httptest.NewRequest(http.MethodDelete, "/api/v1/upload/images/villa.jpg", nil)
	r = mux.SetURLVars(r, map[string]string{"key": "images/villa.jpg"})
	rec := httptest.NewRecorder()
	ctrl.Delete(rec, r)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, storage.deleted)
}

func TestDeleteRejectsTraversalKeys(t *testing.T) {
	storage := &fakeStorage{enabled: true}
	ctrl := NewUploadController(storage)

	r := httptest.NewRequest(http.MethodDelete, "/api/v1/upload/x", nil)
	r = mux.SetURLVars(r, map[string]string{"key": "../secrets.txt"})
	rec := httptest.NewRecorder()
	ctrl.Delete(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, storage.deleted)
}

func TestUploadImageHappyPath(t *testing.T) {
	storage := &fakeStorage{enabled: true}
	ctrl := NewUploadController(storage)

	rec := httptest.NewRecorder()
	ctrl.UploadImage(rec, imageUploadRequest(t))

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, storage.uploads)
}

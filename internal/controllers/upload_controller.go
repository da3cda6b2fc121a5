package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/constants"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/services"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var allowedDocumentTypes = map[string]bool{
	"application/pdf": true,
	"text/csv":        true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

type UploadController struct {
	storage services.StorageService
}

func NewUploadController(storage services.StorageService) *UploadController {
	return &UploadController{storage: storage}
}

type uploadedFile struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// storageReady rejects the request before any multipart body is buffered
// when no storage backend is configured.
func (c *UploadController) storageReady(w http.ResponseWriter) bool {
	if c.storage.Enabled() {
		return true
	}
	utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeExternalServiceFailure, "File storage is not available", nil)
	return false
}

func (c *UploadController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if !c.storageReady(w) {
		return
	}
	file := c.handleSingleUpload(w, r, "image", "images", constants.MaxImageUploadBytes, allowedImageTypes)
	if file == nil {
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, "Image uploaded", file)
}

func (c *UploadController) UploadImages(w http.ResponseWriter, r *http.Request) {
	if !c.storageReady(w) {
		return
	}
	if err := r.ParseMultipartForm(constants.MaxImageUploadBytes * constants.MaxImagesPerBatch); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart form", nil, err)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "No images provided", nil)
		return
	}
	if len(files) > constants.MaxImagesPerBatch {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Too many images in one request", nil)
		return
	}

	var uploaded []uploadedFile
	for _, fh := range files {
		if fh.Size > constants.MaxImageUploadBytes {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Image exceeds the size limit", nil)
			return
		}
		contentType := fh.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Unsupported image type", nil)
			return
		}

		f, err := fh.Open()
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Unreadable file", nil, err)
			return
		}
		key, url, upErr := c.storage.Upload(r.Context(), "images", fh.Filename, contentType, f)
		f.Close()
		if upErr != nil {
			utils.HandleAppError(w, upErr)
			return
		}
		uploaded = append(uploaded, uploadedFile{Key: key, URL: url})
	}

	utils.RespondWithJSON(w, http.StatusCreated, "Images uploaded", uploaded)
}

func (c *UploadController) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if !c.storageReady(w) {
		return
	}
	file := c.handleSingleUpload(w, r, "document", "documents", constants.MaxDocumentUploadBytes, allowedDocumentTypes)
	if file == nil {
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, "Document uploaded", file)
}

func (c *UploadController) Delete(w http.ResponseWriter, r *http.Request) {
	if !c.storageReady(w) {
		return
	}
	key := mux.Vars(r)["key"]
	if key == "" || strings.Contains(key, "..") {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid object key", nil)
		return
	}

	if err := c.storage.Delete(r.Context(), key); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "File deleted", nil)
}

// handleSingleUpload reads one multipart file under the given form field,
// enforces size/type limits, and stores it. Returns nil after responding
// on any failure.
func (c *UploadController) handleSingleUpload(
	w http.ResponseWriter,
	r *http.Request,
	field, folder string,
	maxBytes int64,
	allowedTypes map[string]bool,
) *uploadedFile {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart form", nil, err)
		return nil
	}

	f, fh, err := r.FormFile(field)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing file", nil, err)
		return nil
	}
	defer f.Close()

	if fh.Size > maxBytes {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "File exceeds the size limit", nil)
		return nil
	}
	contentType := fh.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Unsupported file type", nil)
		return nil
	}

	key, url, err := c.storage.Upload(r.Context(), folder, fh.Filename, contentType, f)
	if err != nil {
		utils.HandleAppError(w, err)
		return nil
	}
	return &uploadedFile{Key: key, URL: url}
}

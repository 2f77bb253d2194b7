// internal/app/features/employees/photo.go
package employees

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dalemusser/pulsehub/internal/app/system/httpjson"
	"github.com/dalemusser/pulsehub/internal/app/system/photos"
	"github.com/dalemusser/pulsehub/internal/app/system/timeouts"
)

// maxPhotoForm bounds the multipart form holding one profile photo.
const maxPhotoForm = 6 << 20

// UploadPhoto handles POST /api/employees/{id}/photo. Admin only.
// Expects a multipart form with a "photo" file field.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxPhotoForm); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	emp, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("photo upload: lookup failed", zap.Error(err), zap.String("employee_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	if emp == nil {
		httpjson.Error(w, http.StatusNotFound, "employee not found")
		return
	}

	info, err := h.Photos.Upload(ctx, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, photos.ErrTooLarge):
			httpjson.Error(w, http.StatusRequestEntityTooLarge, "photo exceeds maximum size")
		case errors.Is(err, photos.ErrBadContentType):
			httpjson.Error(w, http.StatusUnsupportedMediaType, "photo must be JPEG, PNG, or WebP")
		default:
			h.Log.Error("photo upload failed", zap.Error(err), zap.String("employee_id", id.Hex()))
			httpjson.Error(w, http.StatusInternalServerError, "failed to store photo")
		}
		return
	}

	url, err := h.Photos.URL(ctx, info.Path)
	if err != nil {
		h.Log.Error("photo upload: url resolution failed", zap.Error(err), zap.String("path", info.Path))
		httpjson.Error(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	if err := h.Employees.Update(ctx, id, bson.M{"photo_url": url}); err != nil {
		h.Log.Error("photo upload: employee update failed", zap.Error(err), zap.String("employee_id", id.Hex()))
		// Clean up the orphaned object; the old photo_url still works.
		if derr := h.Photos.Delete(ctx, info.Path); derr != nil {
			h.Log.Warn("photo upload: orphan cleanup failed", zap.Error(derr), zap.String("path", info.Path))
		}
		httpjson.Error(w, http.StatusInternalServerError, "failed to update employee")
		return
	}

	h.Log.Info("employee photo updated",
		zap.String("employee_id", id.Hex()),
		zap.String("path", info.Path))
	httpjson.Respond(w, http.StatusOK, map[string]string{"photo_url": url})
}

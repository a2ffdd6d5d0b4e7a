package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acucogn/site/internal/imaging"
)

// ThumbsHandler serves resized copies of uploaded images.
type ThumbsHandler struct {
	thumbs *imaging.Thumbnailer
}

// NewThumbsHandler creates a ThumbsHandler.
func NewThumbsHandler(t *imaging.Thumbnailer) *ThumbsHandler {
	return &ThumbsHandler{thumbs: t}
}

// Serve handles GET /thumbs/{size}/{name}.
func (h *ThumbsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	size, err := imaging.ParseSize(chi.URLParam(r, "size"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	path, err := h.thumbs.Thumbnail(chi.URLParam(r, "name"), size)
	switch {
	case err == nil:
	case errors.Is(err, imaging.ErrNotFound), errors.Is(err, imaging.ErrInvalidName):
		http.NotFound(w, r)
		return
	case errors.Is(err, imaging.ErrUnsupported):
		http.Error(w, "Unsupported image", http.StatusUnsupportedMediaType)
		return
	default:
		slog.ErrorContext(r.Context(), "thumbnail failed", "name", chi.URLParam(r, "name"), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=604800")
	http.ServeFile(w, r, path)
}

package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/najdi/internal/imaging"
	"github.com/erazemk/najdi/internal/lifecycle"
)

const (
	// MaxImages is the most images accepted per item.
	MaxImages = 10

	maxFormMemory = 32 << 20
)

var errBadForm = errors.New("invalid form")

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	Service *lifecycle.Service
}

type transitionResponse struct {
	Item    itemDetail `json:"item"`
	Warning string     `json:"warning,omitempty"`
}

type publicTransition struct {
	Item    publicItem `json:"item"`
	Warning string     `json:"warning,omitempty"`
}

// ListMissing handles GET /api/items.
func (h *ItemsHandler) ListMissing(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListMissing(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]publicItem, len(items))
	for i := range items {
		out[i] = toPublic(&items[i])
	}
	jsonResponse(w, http.StatusOK, out)
}

// ListOwned handles GET /api/me/items.
func (h *ItemsHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListOwned(r.Context(), *actor(r))
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, toDetails(items))
}

// ListAll handles GET /api/admin/items.
func (h *ItemsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListAll(r.Context(), *actor(r))
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, toDetails(items))
}

// CreateTracked handles POST /api/me/items.
func (h *ItemsHandler) CreateTracked(w http.ResponseWriter, r *http.Request) {
	in, err := parseNewItem(w, r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.Service.CreateTracked(r.Context(), *actor(r), in)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, toDetail(item))
}

// CreateMissing handles POST /api/admin/items and the public POST /api/reports.
func (h *ItemsHandler) CreateMissing(w http.ResponseWriter, r *http.Request) {
	in, err := parseNewItem(w, r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.Service.CreateMissing(r.Context(), in)
	if err != nil {
		serviceError(w, err)
		return
	}
	if canManage(actor(r), item) {
		jsonResponse(w, http.StatusCreated, toDetail(item))
		return
	}
	jsonResponse(w, http.StatusCreated, toPublic(item))
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	a := actor(r)
	item, err := h.Service.Get(r.Context(), a, r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	if canManage(a, item) {
		jsonResponse(w, http.StatusOK, toDetail(item))
		return
	}
	jsonResponse(w, http.StatusOK, toPublic(item))
}

// Report handles POST /api/items/{id}/report. It is public: a finder who
// knows the identifier may report the item, which notifies the owner.
// Anonymous callers get the public view of the item.
func (h *ItemsHandler) Report(w http.ResponseWriter, r *http.Request) {
	a := actor(r)
	t, err := h.Service.ReportMissing(r.Context(), a, r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	warning := ""
	if t.Warning != nil {
		warning = "item reported, but the owner could not be notified"
	}
	if !canManage(a, t.Item) {
		jsonResponse(w, http.StatusOK, publicTransition{Item: toPublic(t.Item), Warning: warning})
		return
	}
	jsonResponse(w, http.StatusOK, transitionResponse{Item: toDetail(t.Item), Warning: warning})
}

// Unreport handles POST /api/items/{id}/unreport.
func (h *ItemsHandler) Unreport(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Unreport(r.Context(), *actor(r), r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, transitionResponse{Item: toDetail(item)})
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), *actor(r), r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// GetImage handles GET /api/items/{id}/images/{pos}.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	pos, err := strconv.Atoi(r.PathValue("pos"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid image position")
		return
	}

	obj, err := h.Service.Image(r.Context(), actor(r), r.PathValue("id"), pos)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", obj.MIME)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Write(obj.Data)
}

// parseNewItem reads the multipart form shared by all creation endpoints:
// name, email, phone, an optional title and one or more "image" files.
func parseNewItem(w http.ResponseWriter, r *http.Request) (lifecycle.NewItem, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImages*imaging.MaxUploadSize+maxFormMemory)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return lifecycle.NewItem{}, fmt.Errorf("%w: %v", errBadForm, err)
	}

	in := lifecycle.NewItem{
		Title: r.FormValue("title"),
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
		Phone: r.FormValue("phone"),
	}

	files := r.MultipartForm.File["image"]
	if len(files) > MaxImages {
		return lifecycle.NewItem{}, fmt.Errorf("%w: at most %d images", errBadForm, MaxImages)
	}
	for _, fh := range files {
		if fh.Size > imaging.MaxUploadSize {
			return lifecycle.NewItem{}, fmt.Errorf("%w: %s is too large", errBadForm, fh.Filename)
		}
		f, err := fh.Open()
		if err != nil {
			return lifecycle.NewItem{}, fmt.Errorf("%w: %v", errBadForm, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, imaging.MaxUploadSize))
		f.Close()
		if err != nil {
			return lifecycle.NewItem{}, fmt.Errorf("%w: %v", errBadForm, err)
		}
		in.Images = append(in.Images, lifecycle.Upload{Name: fh.Filename, Data: data})
	}

	slog.Debug("parsed item form", "images", len(in.Images))
	return in, nil
}

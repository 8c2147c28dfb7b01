package api

import (
	"errors"
	"net/http"

	"github.com/erazemk/najdi/internal/lifecycle"
)

type searchRequest struct {
	ItemID string `json:"item_id"`
}

type searchResponse struct {
	Status string      `json:"status"`
	Item   *searchItem `json:"item,omitempty"`
}

type messageRequest struct {
	Message string `json:"message"`
}

// Search handles POST /api/search.
func (h *ItemsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.Search(r.Context(), req.ItemID)
	if errors.Is(err, lifecycle.ErrItemNotFound) {
		jsonResponse(w, http.StatusNotFound, searchResponse{Status: "not_found"})
		return
	}
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, searchResponse{
		Status: "found",
		Item: &searchItem{
			ID:    item.ID,
			Name:  item.Name,
			Title: item.Title,
			Image: primaryImageURL(item),
		},
	})
}

// SendMessage handles POST /api/items/{id}/messages.
func (h *ItemsHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SendMessage(r.Context(), r.PathValue("id"), req.Message); err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "success"})
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/grocerly/grocerly/auth"
	"github.com/grocerly/grocerly/models"
	"github.com/grocerly/grocerly/models/item"
)

// ClearResponse reports the outcome of a bulk delete
type ClearResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
}

// ListItems returns all items owned by the current user, newest first
func ListItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity := auth.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	items, err := models.Items().List(identity.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to list items")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error fetching items"})
		return
	}

	if items == nil {
		items = []*item.Item{}
	}

	writeJSON(w, http.StatusOK, items)
}

// CreateItem creates a new item owned by the current user
func CreateItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity := auth.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var fields item.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := models.Items().Create(identity.UserID, fields)
	if err != nil {
		if item.IsValidationError(err) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		log.WithError(err).Error("Failed to create item")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error adding item"})
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateItem updates an item owned by the current user
func UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity := auth.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
		return
	}

	var fields item.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := models.Items().Update(identity.UserID, id, fields)
	if err != nil {
		switch {
		case item.IsValidationError(err):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case err == item.ErrItemNotFound:
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "item not found or unauthorized"})
		default:
			log.WithError(err).Error("Failed to update item")
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error updating item"})
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteItem deletes an item owned by the current user.
// httprouter cannot register static clear routes next to /api/items/:id,
// so the reserved ids clear-completed and clear-all dispatch here.
func DeleteItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("id") {
	case "clear-completed":
		ClearCompleted(w, r, ps)
		return
	case "clear-all":
		ClearAll(w, r, ps)
		return
	}

	identity := auth.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
		return
	}

	if err := models.Items().Delete(identity.UserID, id); err != nil {
		if err == item.ErrItemNotFound {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "item not found or unauthorized"})
			return
		}
		log.WithError(err).Error("Failed to delete item")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error deleting item"})
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "item deleted successfully"})
}

// ToggleItemStatus flips an item between active and completed
func ToggleItemStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity := auth.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
		return
	}

	toggled, err := models.Items().Toggle(identity.UserID, id)
	if err != nil {
		if err == item.ErrItemNotFound {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "item not found or unauthorized"})
			return
		}
		log.WithError(err).Error("Failed to toggle item status")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error toggling status"})
		return
	}

	writeJSON(w, http.StatusOK, toggled)
}

// ClearCompleted deletes all completed items owned by the current user
func ClearCompleted(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity := auth.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	count, err := models.Items().ClearCompleted(identity.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to clear completed items")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error clearing completed items"})
		return
	}

	writeJSON(w, http.StatusOK, ClearResponse{
		Message:      fmt.Sprintf("%d completed items cleared", count),
		DeletedCount: count,
	})
}

// ClearAll deletes every item owned by the current user
func ClearAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity := auth.GetIdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	count, err := models.Items().ClearAll(identity.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to clear items")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error clearing items"})
		return
	}

	writeJSON(w, http.StatusOK, ClearResponse{
		Message:      fmt.Sprintf("all %d items cleared", count),
		DeletedCount: count,
	})
}

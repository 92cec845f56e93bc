package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

type notificationCreateRequest struct {
	FromUserID int64  `json:"from_user_id"`
	UserID     int64  `json:"user_id" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

func (h *handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.store.NotificationsFor(u.ID))
}

// CreateNotification stores a message for the given recipient. The sender is
// always the authenticated caller, whatever from_user_id the payload claims.
func (h *handlers) CreateNotification(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())

	var req notificationCreateRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification payload")
		return
	}
	if _, err := h.store.UserByID(req.UserID); err != nil {
		writeError(w, http.StatusNotFound, "Notification recipient not found")
		return
	}

	n := h.store.CreateNotification(models.NotificationCreate{
		FromUserID: u.ID,
		UserID:     req.UserID,
		Message:    req.Message,
	})
	writeJSON(w, http.StatusOK, n)
}

// UpdateNotificationRead sets is_read on the caller's notification. The flag
// comes from the JSON body {"new_is_read": bool}; a ?new_is_read= query
// parameter is also honored, defaulting to true, for parity with the real
// backend's endpoint signature.
func (h *handlers) UpdateNotificationRead(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Notification not found")
		return
	}

	newIsRead := true
	var body struct {
		NewIsRead *bool `json:"new_is_read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.NewIsRead != nil {
		newIsRead = *body.NewIsRead
	} else if q := r.URL.Query().Get("new_is_read"); q != "" {
		newIsRead = q == "true" || q == "1"
	}

	n, err := h.store.SetNotificationRead(id, u.ID, newIsRead)
	if err != nil {
		writeError(w, http.StatusNotFound, "Notification not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Notification not found")
		return
	}
	n, err := h.store.DeleteNotification(id, u.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Notification not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

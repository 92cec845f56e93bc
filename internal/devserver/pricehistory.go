package devserver

import (
	"net/http"
	"strconv"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

// SearchPriceHistory runs the joined price-history search. Non-admin callers
// are scoped to their own tracking entries; the user_filter parameter only
// takes effect for admins.
func (h *handlers) SearchPriceHistory(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())

	q := models.PriceHistoryQuery{
		Name: r.URL.Query().Get("name"),
	}
	if v := r.URL.Query().Get("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid product_id")
			return
		}
		q.ProductID = id
	}
	switch f := models.NotificationFilter(r.URL.Query().Get("notifications")); f {
	case "", models.NotificationsAll:
	case models.NotificationsEnabled, models.NotificationsDisabled:
		q.Notifications = f
	default:
		writeError(w, http.StatusBadRequest, "invalid notifications filter")
		return
	}
	if v := r.URL.Query().Get("user_filter"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user_filter")
			return
		}
		q.UserFilter = id
	}

	writeJSON(w, http.StatusOK, h.store.SearchHistory(q, u))
}

// ListPriceHistory returns every price point for the caller's tracked
// products, newest first.
func (h *handlers) ListPriceHistory(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.store.SearchHistory(models.PriceHistoryQuery{}, u))
}

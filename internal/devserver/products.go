package devserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

type trackProductRequest struct {
	Product struct {
		URL    string `json:"url" validate:"required,url"`
		Source string `json:"source"`
	} `json:"product" validate:"required"`
	Notes          string   `json:"notes"`
	Notify         bool     `json:"notify"`
	LowerThreshold *float64 `json:"lower_threshold"`
	UpperThreshold *float64 `json:"upper_threshold"`
}

// productOut merges the catalog record with one user's tracking settings.
// t may be nil (admin reading a product they do not track).
func productOut(p *productRecord, t *trackRecord) models.Product {
	low, high := p.LowestPrice, p.HighestPrice
	out := models.Product{
		ID:           p.ID,
		URL:          p.URL,
		Name:         p.Name,
		CurrentPrice: p.CurrentPrice,
		LowestPrice:  &low,
		HighestPrice: &high,
		Source:       p.Source,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt,
		LastChecked:  p.LastChecked,
	}
	if t != nil {
		out.Notes = t.Notes
		out.Notify = t.Notify
		out.LowerThreshold = t.LowerThreshold
		out.UpperThreshold = t.UpperThreshold
	}
	return out
}

// ListProducts returns the whole catalog without per-user fields. Like the
// real backend, the route is public.
func (h *handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	records := h.store.AllProducts()
	out := make([]models.Product, 0, len(records))
	for _, p := range records {
		out = append(out, productOut(p, nil))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetProduct returns one product with the caller's tracking settings. A
// caller who does not track the product gets 403 unless they are an admin,
// in which case the bare catalog entry comes back.
func (h *handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	p, ok := h.store.ProductByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	t, tracked := h.store.TrackFor(u.ID, p.ID)
	if !tracked {
		if !u.Admin {
			writeError(w, http.StatusForbidden, "You do not have permission to access this product")
			return
		}
		writeJSON(w, http.StatusOK, productOut(p, nil))
		return
	}
	writeJSON(w, http.StatusOK, productOut(p, t))
}

// UserProducts lists the products tracked by the given user. Callers may only
// read their own list unless they are admins; an admin asking for user 0 gets
// the whole catalog.
func (h *handlers) UserProducts(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "There is no user with this ID")
		return
	}
	if u.ID != userID && !u.Admin {
		writeError(w, http.StatusForbidden, "You do not have permission to access this user's products")
		return
	}

	if u.Admin && userID == 0 {
		h.ListProducts(w, r)
		return
	}

	tracks := h.store.TracksByUser(userID)
	out := make([]models.Product, 0, len(tracks))
	for _, t := range tracks {
		if p, ok := h.store.ProductByID(t.ProductID); ok {
			out = append(out, productOut(p, t))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateProduct starts tracking a product for the caller, creating the
// catalog entry and its first price point if the URL is new.
func (h *handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())

	var req trackProductRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product payload")
		return
	}

	p, ok := h.store.ProductByURL(req.Product.URL)
	if !ok {
		p = h.store.CreateProduct(req.Product.URL, req.Product.Source)
	}

	t := &trackRecord{
		UserID:         u.ID,
		ProductID:      p.ID,
		Notes:          req.Notes,
		Notify:         req.Notify,
		LowerThreshold: req.LowerThreshold,
		UpperThreshold: req.UpperThreshold,
	}
	h.store.Track(t)

	writeJSON(w, http.StatusCreated, productOut(p, t))
}

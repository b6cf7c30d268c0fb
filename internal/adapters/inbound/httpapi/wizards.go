package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ordercraft/ordercraft/internal/application"
	"github.com/ordercraft/ordercraft/internal/domain"
)

// WizardHandler serves /wizards.
type WizardHandler struct {
	sessions *application.SessionManager
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(sessions *application.SessionManager) *WizardHandler {
	return &WizardHandler{sessions: sessions}
}

// RegisterRoutes registers wizard endpoints on the given Chi router.
func (h *WizardHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Open)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Cancel)
		r.Post("/next", h.Next)
		r.Post("/back", h.Back)
		r.Get("/customers", h.SearchCustomers)
		r.Put("/customer", h.SelectCustomer)
		r.Get("/products", h.SearchProducts)
		r.Post("/lines", h.AddLine)
		r.Put("/lines/{productID}", h.SetQuantity)
		r.Delete("/lines/{productID}", h.RemoveLine)
		r.Put("/adjustments", h.SetAdjustments)
		r.Post("/submit", h.Submit)
	})
}

// --- Request / Response types ---

type sessionResponse struct {
	SessionID string                `json:"session_id"`
	Snapshot  domain.WizardSnapshot `json:"snapshot"`
}

type selectCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

type addLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// --- Handlers ---

// Open starts a new wizard session.
func (h *WizardHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, wiz := h.sessions.Open(r.Context())
	h.respondSnapshot(w, http.StatusCreated, id, wiz)
}

// Get returns the session snapshot.
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	h.respondSnapshot(w, http.StatusOK, id, wiz)
}

// Cancel discards the session and its draft.
func (h *WizardHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Cancel(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Next advances to the following step.
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	moved, err := wiz.Next()
	if err != nil {
		writeError(w, err)
		return
	}
	if !moved {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "select a customer before continuing"})
		return
	}
	h.respondSnapshot(w, http.StatusOK, id, wiz)
}

// Back returns to the previous step.
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	if err := wiz.Back(); err != nil {
		writeError(w, err)
		return
	}
	h.respondSnapshot(w, http.StatusOK, id, wiz)
}

// SearchCustomers filters the loaded customers by q.
func (h *WizardHandler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	_, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	customers, err := wiz.SearchCustomers(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	writeJSON(w, http.StatusOK, customers)
}

// SelectCustomer picks the order's customer.
func (h *WizardHandler) SelectCustomer(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	var req selectCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.CustomerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer_id is required"})
		return
	}
	if err := wiz.SelectCustomer(req.CustomerID); err != nil {
		writeError(w, err)
		return
	}
	h.respondSnapshot(w, http.StatusOK, id, wiz)
}

// SearchProducts filters the loaded products by q.
func (h *WizardHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	_, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	products, err := wiz.SearchProducts(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// AddLine adds a product to the cart or bumps its quantity.
func (h *WizardHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	req := addLineRequest{Quantity: 1}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product_id is required"})
		return
	}
	if err := wiz.AddProductQuantity(req.ProductID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	h.respondSnapshot(w, http.StatusOK, id, wiz)
}

// SetQuantity sets a line's quantity. Zero or less removes it.
func (h *WizardHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := wiz.SetQuantity(chi.URLParam(r, "productID"), req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	h.respondSnapshot(w, http.StatusOK, id, wiz)
}

// RemoveLine drops a product from the cart.
func (h *WizardHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	if err := wiz.RemoveProduct(chi.URLParam(r, "productID")); err != nil {
		writeError(w, err)
		return
	}
	h.respondSnapshot(w, http.StatusOK, id, wiz)
}

// SetAdjustments takes a JSON object of field name to value. Every name is
// checked before any field changes.
func (h *WizardHandler) SetAdjustments(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	for name := range req {
		if _, err := domain.ParseAdjustmentField(name); err != nil {
			writeError(w, err)
			return
		}
	}
	for name, value := range req {
		if err := wiz.SetAdjustment(name, value); err != nil {
			writeError(w, err)
			return
		}
	}
	h.respondSnapshot(w, http.StatusOK, id, wiz)
}

// Submit creates the order. The backend call is detached from the request so
// a client hanging up does not abort an order the backend may have accepted.
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	_, wiz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	conf, err := wiz.Submit(context.WithoutCancel(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conf)
}

// --- Helpers ---

func (h *WizardHandler) wizard(w http.ResponseWriter, r *http.Request) (string, *application.Wizard, bool) {
	id := chi.URLParam(r, "id")
	wiz, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, err)
		return "", nil, false
	}
	return id, wiz, true
}

func (h *WizardHandler) respondSnapshot(w http.ResponseWriter, status int, id string, wiz *application.Wizard) {
	snap, err := wiz.Snapshot()
	if err != nil {
		writeError(w, fmt.Errorf("session %s: %w", id, err))
		return
	}
	writeJSON(w, status, sessionResponse{SessionID: id, Snapshot: snap})
}

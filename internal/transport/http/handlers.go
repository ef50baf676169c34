package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/joshdurbin/sms-link-shortener/internal/domain"
	"github.com/joshdurbin/sms-link-shortener/internal/registry"
	"github.com/joshdurbin/sms-link-shortener/internal/store"
)

// Handler holds the HTTP handlers for the SMS link shortener
type Handler struct {
	registry  registry.LinkRegistry
	linkStore store.LinkStore
	baseURL   string
}

// NewHandler creates a new HTTP handler. The store is used only for the
// status view; all link operations go through the registry.
func NewHandler(linkRegistry registry.LinkRegistry, linkStore store.LinkStore, baseURL string) *Handler {
	return &Handler{
		registry:  linkRegistry,
		linkStore: linkStore,
		baseURL:   baseURL,
	}
}

// CreateLink handles POST /api/links
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Invalid JSON in create link request: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	record, err := h.registry.Create(r.Context(), req.Phone, req.Message, h.baseURL)
	if err != nil {
		var validationErr *registry.ValidationError
		if errors.As(err, &validationErr) {
			http.Error(w, validationErr.Error(), http.StatusBadRequest)
			return
		}

		log.Printf("[ERROR] Failed to create link for phone '%s': %v", req.Phone, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	linksCreated.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(record); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// GetAnalytics handles GET /api/links/{shortId}
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shortID := strings.TrimPrefix(r.URL.Path, "/api/links/")
	if shortID == "" {
		http.Error(w, "Short id is required", http.StatusBadRequest)
		return
	}

	record, err := h.registry.GetAnalytics(r.Context(), shortID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Short id not found", http.StatusNotFound)
			return
		}

		log.Printf("[ERROR] Failed to get analytics for short id '%s': %v", shortID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(record); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Redirect handles GET /s/{shortId} - redirects to the sms: deep link
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	shortID := strings.TrimPrefix(r.URL.Path, "/s/")
	if shortID == "" || strings.Contains(shortID, "/") {
		http.NotFound(w, r)
		return
	}

	deepLink, err := h.registry.Resolve(r.Context(), shortID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			linkResolves.WithLabelValues("miss").Inc()
			http.NotFound(w, r)
			return
		}

		linkResolves.WithLabelValues("error").Inc()
		log.Printf("[ERROR] Failed to resolve short id '%s': %v", shortID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	linkResolves.WithLabelValues("hit").Inc()
	http.Redirect(w, r, deepLink, http.StatusFound)
}

// Status handles GET /api/status - reports the total link count
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	total, err := h.linkStore.CountAll(r.Context())
	if err != nil {
		log.Printf("[ERROR] Failed to count links: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(domain.StatusResponse{TotalLinks: total}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

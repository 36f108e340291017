package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/boazcstrike/silayan-laundry/models"
	"github.com/boazcstrike/silayan-laundry/service"
	"github.com/boazcstrike/silayan-laundry/utils"
)

// CountController handles HTTP requests for the tally counts
type CountController struct {
	sessions *service.SessionManager
	catalog  *models.Catalog
}

// NewCountController creates a new CountController
func NewCountController(sessions *service.SessionManager, catalog *models.Catalog) *CountController {
	return &CountController{sessions: sessions, catalog: catalog}
}

// GetCatalog handles GET /api/catalog
// Returns the static item catalog keyed by category name
func (c *CountController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.catalog.ToMap()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// GetCounts handles GET /api/counts
// Returns the session's current counts plus orchestration state
func (c *CountController) GetCounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := c.sessions.Get(sessionID(w, r))
	predefined, custom := sess.Store.Snapshot()

	resp := models.CountsResponse{
		Predefined: predefined,
		Custom:     custom,
		State:      string(sess.State()),
		LastError:  sess.LastError(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// UpdateCount handles POST /api/counts/update
// Adjusts one item's count by a delta, clamped at 0
func (c *CountController) UpdateCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.UpdateCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	sess := c.sessions.Get(sessionID(w, r))
	if err := sess.Store.UpdateCount(req.Name, req.Delta, req.Custom); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.writeCounts(w, sess)
}

// SetCount handles POST /api/counts/set
// Sets one item's count directly; malformed values are sanitized at
// this boundary (non-numeric -> 0, fractions truncated, negatives clamped)
func (c *CountController) SetCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SetCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	sess := c.sessions.Get(sessionID(w, r))
	value := utils.CoerceNumber(req.Value)
	if err := sess.Store.SetCount(req.Name, value, req.Custom); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.writeCounts(w, sess)
}

// AddCustomItem handles POST /api/counts/custom
func (c *CountController) AddCustomItem(w http.ResponseWriter, r *http.Request) {
	var req models.CustomItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	sess := c.sessions.Get(sessionID(w, r))
	sess.Store.AddCustomItem(req.Name)
	c.writeCounts(w, sess)
}

// RemoveCustomItem handles DELETE /api/counts/custom
func (c *CountController) RemoveCustomItem(w http.ResponseWriter, r *http.Request) {
	var req models.CustomItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	sess := c.sessions.Get(sessionID(w, r))
	sess.Store.RemoveCustomItem(req.Name)
	c.writeCounts(w, sess)
}

func (c *CountController) writeCounts(w http.ResponseWriter, sess *service.Session) {
	predefined, custom := sess.Store.Snapshot()
	resp := models.CountsResponse{
		Predefined: predefined,
		Custom:     custom,
		State:      string(sess.State()),
		LastError:  sess.LastError(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

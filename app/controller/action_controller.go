package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/boazcstrike/silayan-laundry/models"
	"github.com/boazcstrike/silayan-laundry/service"
)

// ActionController handles the download, send and reset actions
type ActionController struct {
	sessions *service.SessionManager
	tally    *service.TallyService
}

// NewActionController creates a new ActionController
func NewActionController(sessions *service.SessionManager, tally *service.TallyService) *ActionController {
	return &ActionController{sessions: sessions, tally: tally}
}

// Download handles POST /api/actions/download
// Composes the tally image and returns it as a file attachment
func (c *ActionController) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := c.sessions.Get(sessionID(w, r))
	data, filename, err := c.tally.Download(r.Context(), sess)
	if err != nil {
		if errors.Is(err, service.ErrSessionBusy) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to generate image: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Send handles POST /api/actions/send
// Composes the tally image and delivers it over the chosen channel.
// Delivery failure is reported in the response body, not as an HTTP error.
func (c *ActionController) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SendRequest
	if r.Body != nil {
		// An empty body means default message and channel
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	sess := c.sessions.Get(sessionID(w, r))
	resp, err := c.tally.Send(r.Context(), sess, req.Message, req.Channel)
	if err != nil {
		if errors.Is(err, service.ErrSessionBusy) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to send image: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// Reset handles POST /api/counts/reset
// The reset only proceeds with an explicit confirm flag; a declined
// confirmation leaves all counts unchanged
func (c *ActionController) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	sess := c.sessions.Get(sessionID(w, r))
	reset, err := c.tally.Reset(sess, req.Confirm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"reset": reset})
}

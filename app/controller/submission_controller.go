package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/boazcstrike/silayan-laundry/models"
	"github.com/boazcstrike/silayan-laundry/repository"
)

// SubmissionController exposes the read-only submission log queries
type SubmissionController struct {
	repo repository.SubmissionRepositoryInterface
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(repo repository.SubmissionRepositoryInterface) *SubmissionController {
	return &SubmissionController{repo: repo}
}

// List handles GET /api/submissions?limit=&channel=
func (c *SubmissionController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := repository.DefaultQueryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	var submissions []models.Submission
	var err error
	if channel := r.URL.Query().Get("channel"); channel != "" {
		if !models.ValidChannel(channel) {
			http.Error(w, fmt.Sprintf("unknown channel: %s", channel), http.StatusBadRequest)
			return
		}
		submissions, err = c.repo.RecentByChannel(r.Context(), channel, limit)
	} else {
		submissions, err = c.repo.Recent(r.Context(), limit)
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list submissions: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{"submissions": submissions})
}

// GetByID handles GET /api/submissions/:id
func (c *SubmissionController) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/submissions/")
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		http.Error(w, "id must be an integer", http.StatusBadRequest)
		return
	}

	submission, err := c.repo.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get submission: %v", err), http.StatusNotFound)
		return
	}

	writeJSON(w, submission)
}

// Stats handles GET /api/submissions/stats
func (c *SubmissionController) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := c.repo.Summary(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build summary: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, summary)
}

// Channels handles GET /api/submissions/channels
func (c *SubmissionController) Channels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := c.repo.ChannelStats(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build channel stats: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{"channels": stats})
}

// Range handles GET /api/submissions/range?from=&to= (RFC 3339 timestamps)
func (c *SubmissionController) Range(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "from must be an RFC3339 timestamp", http.StatusBadRequest)
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "to must be an RFC3339 timestamp", http.StatusBadRequest)
		return
	}

	submissions, err := c.repo.ByTimeRange(r.Context(), from, to)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to query submissions: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{"submissions": submissions})
}

// Export handles GET /api/submissions/export
// Returns the entire submission log as a JSON document
func (c *SubmissionController) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := c.repo.ExportAll(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to export submissions: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="submissions.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

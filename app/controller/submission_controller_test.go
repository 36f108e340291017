package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boazcstrike/silayan-laundry/models"
	"github.com/boazcstrike/silayan-laundry/repository"
)

func newSubmissionController(t *testing.T) (*SubmissionController, *repository.MemorySubmissionRepository) {
	t.Helper()
	repo := repository.NewMemorySubmissionRepository()
	return NewSubmissionController(repo), repo
}

func seedSubmissions(t *testing.T, repo *repository.MemorySubmissionRepository) {
	t.Helper()
	ctx := context.Background()
	_, err := repo.Record(ctx, map[string]int{"Towel": 4}, models.RecordOptions{Channel: models.ChannelDiscord, Success: true})
	require.NoError(t, err)
	_, err = repo.Record(ctx, map[string]int{"Blanket": 1}, models.RecordOptions{Channel: models.ChannelLocalSave, Success: true})
	require.NoError(t, err)
}

func TestSubmissionController_List(t *testing.T) {
	ctrl, repo := newSubmissionController(t)
	seedSubmissions(t, repo)

	rec := doJSON(t, ctrl.List, http.MethodGet, "/api/submissions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Submissions []models.Submission `json:"submissions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Submissions, 2)

	// Channel filter
	rec = doJSON(t, ctrl.List, http.MethodGet, "/api/submissions?channel=discord", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Submissions, 1)
	assert.Equal(t, models.ChannelDiscord, resp.Submissions[0].Channel)

	// Unknown channel and bad limit are rejected
	rec = doJSON(t, ctrl.List, http.MethodGet, "/api/submissions?channel=fax", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(t, ctrl.List, http.MethodGet, "/api/submissions?limit=nope", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmissionController_GetByID(t *testing.T) {
	ctrl, repo := newSubmissionController(t)
	seedSubmissions(t, repo)

	rec := doJSON(t, ctrl.GetByID, http.MethodGet, "/api/submissions/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var submission models.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submission))
	assert.Equal(t, int64(1), submission.ID)

	rec = doJSON(t, ctrl.GetByID, http.MethodGet, "/api/submissions/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, ctrl.GetByID, http.MethodGet, "/api/submissions/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmissionController_StatsAndChannels(t *testing.T) {
	ctrl, repo := newSubmissionController(t)
	seedSubmissions(t, repo)

	rec := doJSON(t, ctrl.Stats, http.MethodGet, "/api/submissions/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary models.SubmissionSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalSubmissions)

	rec = doJSON(t, ctrl.Channels, http.MethodGet, "/api/submissions/channels", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var channels struct {
		Channels []models.ChannelStats `json:"channels"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &channels))
	assert.Len(t, channels.Channels, 2)
}

func TestSubmissionController_Range(t *testing.T) {
	ctrl, repo := newSubmissionController(t)
	seedSubmissions(t, repo)

	rec := doJSON(t, ctrl.Range, http.MethodGet,
		"/api/submissions/range?from=2000-01-01T00:00:00Z&to=2100-01-01T00:00:00Z", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Submissions []models.Submission `json:"submissions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Submissions, 2)

	rec = doJSON(t, ctrl.Range, http.MethodGet, "/api/submissions/range?from=yesterday&to=today", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmissionController_Export(t *testing.T) {
	ctrl, repo := newSubmissionController(t)
	seedSubmissions(t, repo)

	rec := doJSON(t, ctrl.Export, http.MethodGet, "/api/submissions/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "submissions.json")

	var doc struct {
		Submissions []models.Submission `json:"submissions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Len(t, doc.Submissions, 2)
}

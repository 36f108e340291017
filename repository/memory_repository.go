package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/boazcstrike/silayan-laundry/models"
)

// MemorySubmissionRepository keeps the submission log in memory. It
// backs tests and deployments that run without a database.
type MemorySubmissionRepository struct {
	mu          sync.Mutex
	nextID      int64
	submissions []storedSubmission
}

type storedSubmission struct {
	submission models.Submission
	createdAt  time.Time
}

// NewMemorySubmissionRepository creates an empty in-memory submission log
func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{nextID: 1}
}

// Ensure MemorySubmissionRepository implements SubmissionRepositoryInterface
var _ SubmissionRepositoryInterface = (*MemorySubmissionRepository)(nil)

// Close is a no-op for the in-memory store
func (r *MemorySubmissionRepository) Close() error {
	return nil
}

// Record appends one submission with its positive-count item rows
func (r *MemorySubmissionRepository) Record(ctx context.Context, counts map[string]int, opts models.RecordOptions) (int64, error) {
	if !models.ValidChannel(opts.Channel) {
		return 0, fmt.Errorf("unknown channel: %s", opts.Channel)
	}

	itemsWithValues := 0
	var items []models.SubmissionItem
	for _, name := range sortedItemNames(counts) {
		count := counts[name]
		if count <= 0 {
			continue
		}
		itemsWithValues++
		items = append(items, models.SubmissionItem{Name: name, Count: count})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	submission := models.Submission{
		ID:              r.nextID,
		CreatedAt:       now.Format(time.RFC3339),
		Channel:         opts.Channel,
		Scenario:        opts.Scenario,
		CustomerRef:     opts.CustomerRef,
		TotalItems:      len(counts),
		ItemsWithValues: itemsWithValues,
		Success:         opts.Success,
		Items:           items,
	}
	r.nextID++
	r.submissions = append(r.submissions, storedSubmission{submission: submission, createdAt: now})
	return submission.ID, nil
}

// GetByID fetches one submission by identifier
func (r *MemorySubmissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.submissions {
		if stored.submission.ID == id {
			s := stored.submission
			return &s, nil
		}
	}
	return nil, fmt.Errorf("submission not found")
}

// Recent returns the most recent submissions, newest first
func (r *MemorySubmissionRepository) Recent(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	return r.filtered(func(storedSubmission) bool { return true }, limit), nil
}

// RecentByChannel returns the most recent submissions for one channel
func (r *MemorySubmissionRepository) RecentByChannel(ctx context.Context, channel string, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	return r.filtered(func(s storedSubmission) bool { return s.submission.Channel == channel }, limit), nil
}

// ByTimeRange returns submissions created within [from, to], newest first
func (r *MemorySubmissionRepository) ByTimeRange(ctx context.Context, from, to time.Time) ([]models.Submission, error) {
	matches := r.filtered(func(s storedSubmission) bool {
		return !s.createdAt.Before(from) && !s.createdAt.After(to)
	}, 0)
	return matches, nil
}

// ChannelStats returns per-channel totals and success rates
func (r *MemorySubmissionRepository) ChannelStats(ctx context.Context) ([]models.ChannelStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byChannel := make(map[string]*models.ChannelStats)
	for _, stored := range r.submissions {
		s := byChannel[stored.submission.Channel]
		if s == nil {
			s = &models.ChannelStats{Channel: stored.submission.Channel}
			byChannel[stored.submission.Channel] = s
		}
		s.Total++
		if stored.submission.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}

	var stats []models.ChannelStats
	for _, s := range byChannel {
		if s.Total > 0 {
			s.SuccessRate = float64(s.Succeeded) / float64(s.Total)
		}
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Channel < stats[j].Channel })
	return stats, nil
}

// Summary returns the global aggregate view of the submission log
func (r *MemorySubmissionRepository) Summary(ctx context.Context) (*models.SubmissionSummary, error) {
	r.mu.Lock()

	summary := &models.SubmissionSummary{}
	itemFreq := make(map[string]*models.ItemFrequency)
	totalWithValues := 0

	for _, stored := range r.submissions {
		summary.TotalSubmissions++
		if stored.submission.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		totalWithValues += stored.submission.ItemsWithValues
		for _, item := range stored.submission.Items {
			freq := itemFreq[item.Name]
			if freq == nil {
				freq = &models.ItemFrequency{Name: item.Name}
				itemFreq[item.Name] = freq
			}
			freq.Submissions++
			freq.TotalCount += item.Count
		}
	}

	if summary.TotalSubmissions > 0 {
		summary.AvgItemsWithValues = float64(totalWithValues) / float64(summary.TotalSubmissions)
	}

	for _, freq := range itemFreq {
		summary.TopItems = append(summary.TopItems, *freq)
	}
	// Rank by submission frequency, then total count, then name
	sort.Slice(summary.TopItems, func(i, j int) bool {
		a, b := summary.TopItems[i], summary.TopItems[j]
		if a.Submissions != b.Submissions {
			return a.Submissions > b.Submissions
		}
		if a.TotalCount != b.TotalCount {
			return a.TotalCount > b.TotalCount
		}
		return a.Name < b.Name
	})
	if len(summary.TopItems) > 10 {
		summary.TopItems = summary.TopItems[:10]
	}

	r.mu.Unlock()

	recent, err := r.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	summary.Recent = recent
	return summary, nil
}

// ExportAll serializes every submission as a JSON document
func (r *MemorySubmissionRepository) ExportAll(ctx context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	submissions := make([]models.Submission, 0, len(r.submissions))
	for _, stored := range r.submissions {
		submissions = append(submissions, stored.submission)
	}

	data, err := json.MarshalIndent(map[string]interface{}{"submissions": submissions}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return data, nil
}

func (r *MemorySubmissionRepository) filtered(match func(storedSubmission) bool, limit int) []models.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []models.Submission
	// Stored in insertion order; walk backwards for newest first
	for i := len(r.submissions) - 1; i >= 0; i-- {
		if !match(r.submissions[i]) {
			continue
		}
		matches = append(matches, r.submissions[i].submission)
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches
}

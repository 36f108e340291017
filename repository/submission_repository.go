package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/boazcstrike/silayan-laundry/models"
)

// PostgresSubmissionRepository persists submissions in PostgreSQL
type PostgresSubmissionRepository struct {
	db *sql.DB
}

// NewPostgresSubmissionRepository creates a repository bound to an
// already opened database handle
func NewPostgresSubmissionRepository(database *sql.DB) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{db: database}
}

// Ensure PostgresSubmissionRepository implements SubmissionRepositoryInterface
var _ SubmissionRepositoryInterface = (*PostgresSubmissionRepository)(nil)

// EnsureSchema creates the submission log tables when they don't exist
func (r *PostgresSubmissionRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			id BIGSERIAL PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			channel TEXT NOT NULL,
			scenario TEXT NOT NULL DEFAULT '',
			customer_ref TEXT NOT NULL DEFAULT '',
			total_items INT NOT NULL,
			items_with_values INT NOT NULL,
			success BOOLEAN NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS submission_items (
			id BIGSERIAL PRIMARY KEY,
			submission_id BIGINT NOT NULL REFERENCES submissions(id) ON DELETE CASCADE,
			item_name TEXT NOT NULL,
			item_count INT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_submission_items_submission_id ON submission_items(submission_id)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create submission schema: %w", err)
		}
	}
	return nil
}

// Close is a no-op; the repository does not own the database handle
func (r *PostgresSubmissionRepository) Close() error {
	return nil
}

// Record inserts the parent row and one child row per item with a count
// greater than 0 in a single transaction
func (r *PostgresSubmissionRepository) Record(ctx context.Context, counts map[string]int, opts models.RecordOptions) (int64, error) {
	if !models.ValidChannel(opts.Channel) {
		return 0, fmt.Errorf("unknown channel: %s", opts.Channel)
	}

	totalItems := len(counts)
	itemsWithValues := 0
	for _, count := range counts {
		if count > 0 {
			itemsWithValues++
		}
	}

	log.Printf("📦 Record: channel=%s success=%t totalItems=%d itemsWithValues=%d",
		opts.Channel, opts.Success, totalItems, itemsWithValues)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryInsert := `
		INSERT INTO submissions (channel, scenario, customer_ref, total_items, items_with_values, success)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var submissionID int64
	err = tx.QueryRowContext(ctx, queryInsert,
		opts.Channel, opts.Scenario, opts.CustomerRef, totalItems, itemsWithValues, opts.Success,
	).Scan(&submissionID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert submission: %w", err)
	}

	queryItem := `
		INSERT INTO submission_items (submission_id, item_name, item_count)
		VALUES ($1, $2, $3)
	`
	for _, name := range sortedItemNames(counts) {
		count := counts[name]
		if count <= 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, queryItem, submissionID, name, count); err != nil {
			return 0, fmt.Errorf("failed to insert submission item %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit submission: %w", err)
	}

	log.Printf("✓ Submission recorded: id=%d", submissionID)
	return submissionID, nil
}

// GetByID fetches one submission with its item rows
func (r *PostgresSubmissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := `
		SELECT id, created_at, channel, scenario, customer_ref, total_items, items_with_values, success
		FROM submissions
		WHERE id = $1
	`
	submission, err := r.scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("submission not found")
		}
		return nil, fmt.Errorf("failed to fetch submission: %w", err)
	}

	if err := r.loadItems(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// Recent returns the most recent submissions, newest first
func (r *PostgresSubmissionRepository) Recent(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	query := `
		SELECT id, created_at, channel, scenario, customer_ref, total_items, items_with_values, success
		FROM submissions
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	return r.querySubmissions(ctx, query, limit)
}

// RecentByChannel returns the most recent submissions for one channel
func (r *PostgresSubmissionRepository) RecentByChannel(ctx context.Context, channel string, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	query := `
		SELECT id, created_at, channel, scenario, customer_ref, total_items, items_with_values, success
		FROM submissions
		WHERE channel = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	return r.querySubmissions(ctx, query, channel, limit)
}

// ByTimeRange returns submissions created within [from, to], newest first
func (r *PostgresSubmissionRepository) ByTimeRange(ctx context.Context, from, to time.Time) ([]models.Submission, error) {
	query := `
		SELECT id, created_at, channel, scenario, customer_ref, total_items, items_with_values, success
		FROM submissions
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC, id DESC
	`
	return r.querySubmissions(ctx, query, from, to)
}

// ChannelStats returns per-channel totals and success rates
func (r *PostgresSubmissionRepository) ChannelStats(ctx context.Context) ([]models.ChannelStats, error) {
	query := `
		SELECT channel,
		       COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0) AS succeeded
		FROM submissions
		GROUP BY channel
		ORDER BY channel ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query channel stats: %w", err)
	}
	defer rows.Close()

	var stats []models.ChannelStats
	for rows.Next() {
		var s models.ChannelStats
		if err := rows.Scan(&s.Channel, &s.Total, &s.Succeeded); err != nil {
			return nil, fmt.Errorf("failed to scan channel stats: %w", err)
		}
		s.Failed = s.Total - s.Succeeded
		if s.Total > 0 {
			s.SuccessRate = float64(s.Succeeded) / float64(s.Total)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate channel stats: %w", err)
	}
	return stats, nil
}

// Summary returns the global aggregate view of the submission log
func (r *PostgresSubmissionRepository) Summary(ctx context.Context) (*models.SubmissionSummary, error) {
	summary := &models.SubmissionSummary{}

	queryTotals := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(items_with_values), 0)
		FROM submissions
	`
	err := r.db.QueryRowContext(ctx, queryTotals).Scan(
		&summary.TotalSubmissions, &summary.Succeeded, &summary.AvgItemsWithValues)
	if err != nil {
		return nil, fmt.Errorf("failed to query submission totals: %w", err)
	}
	summary.Failed = summary.TotalSubmissions - summary.Succeeded

	queryTop := `
		SELECT item_name, COUNT(*) AS submissions, COALESCE(SUM(item_count), 0) AS total_count
		FROM submission_items
		GROUP BY item_name
		ORDER BY submissions DESC, total_count DESC, item_name ASC
		LIMIT 10
	`
	rows, err := r.db.QueryContext(ctx, queryTop)
	if err != nil {
		return nil, fmt.Errorf("failed to query top items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var freq models.ItemFrequency
		if err := rows.Scan(&freq.Name, &freq.Submissions, &freq.TotalCount); err != nil {
			return nil, fmt.Errorf("failed to scan top item: %w", err)
		}
		summary.TopItems = append(summary.TopItems, freq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top items: %w", err)
	}

	recent, err := r.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	summary.Recent = recent

	return summary, nil
}

// ExportAll serializes every submission (with items) as a JSON document
func (r *PostgresSubmissionRepository) ExportAll(ctx context.Context) ([]byte, error) {
	query := `
		SELECT id, created_at, channel, scenario, customer_ref, total_items, items_with_values, success
		FROM submissions
		ORDER BY created_at ASC, id ASC
	`
	submissions, err := r.querySubmissions(ctx, query)
	if err != nil {
		return nil, err
	}

	for i := range submissions {
		if err := r.loadItems(ctx, &submissions[i]); err != nil {
			return nil, err
		}
	}

	data, err := json.MarshalIndent(map[string]interface{}{"submissions": submissions}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return data, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresSubmissionRepository) scanSubmission(row rowScanner) (*models.Submission, error) {
	var s models.Submission
	var createdAt time.Time
	err := row.Scan(&s.ID, &createdAt, &s.Channel, &s.Scenario, &s.CustomerRef,
		&s.TotalItems, &s.ItemsWithValues, &s.Success)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Format(time.RFC3339)
	return &s, nil
}

func (r *PostgresSubmissionRepository) querySubmissions(ctx context.Context, query string, args ...interface{}) ([]models.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		s, err := r.scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return submissions, nil
}

func (r *PostgresSubmissionRepository) loadItems(ctx context.Context, submission *models.Submission) error {
	query := `
		SELECT item_name, item_count
		FROM submission_items
		WHERE submission_id = $1
		ORDER BY item_name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, submission.ID)
	if err != nil {
		return fmt.Errorf("failed to query submission items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.SubmissionItem
		if err := rows.Scan(&item.Name, &item.Count); err != nil {
			return fmt.Errorf("failed to scan submission item: %w", err)
		}
		submission.Items = append(submission.Items, item)
	}
	return rows.Err()
}

func sortedItemNames(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/boazcstrike/silayan-laundry/models"
)

// SubmissionRepositoryInterface defines the contract for the submission log
type SubmissionRepositoryInterface interface {
	// Record inserts one submission plus one child row per item with a
	// count > 0, atomically, and returns the new submission ID
	Record(ctx context.Context, counts map[string]int, opts models.RecordOptions) (int64, error)

	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	Recent(ctx context.Context, limit int) ([]models.Submission, error)
	RecentByChannel(ctx context.Context, channel string, limit int) ([]models.Submission, error)
	ChannelStats(ctx context.Context) ([]models.ChannelStats, error)
	Summary(ctx context.Context) (*models.SubmissionSummary, error)
	ByTimeRange(ctx context.Context, from, to time.Time) ([]models.Submission, error)
	ExportAll(ctx context.Context) ([]byte, error)

	Close() error
}

// DefaultQueryLimit is applied when a read operation is given no limit
const DefaultQueryLimit = 10

// NewSubmissionRepository selects the log store implementation from the
// explicit configuration flag. The Postgres variant requires an already
// opened database handle.
func NewSubmissionRepository(store string, database *sql.DB) (SubmissionRepositoryInterface, error) {
	switch store {
	case "postgres":
		if database == nil {
			return nil, fmt.Errorf("postgres log store requires a database connection")
		}
		return NewPostgresSubmissionRepository(database), nil
	case "memory":
		return NewMemorySubmissionRepository(), nil
	default:
		return nil, fmt.Errorf("unknown log store: %s", store)
	}
}

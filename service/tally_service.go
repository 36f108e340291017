package service

import (
	"context"
	"fmt"
	"log"

	"github.com/boazcstrike/silayan-laundry/models"
	"github.com/boazcstrike/silayan-laundry/repository"
)

// TallyService orchestrates the download, send and reset actions,
// wiring the Count Store, Image Compositor, delivery channels and
// Submission Recorder together
type TallyService struct {
	compositor ImageCompositorInterface
	uploader   UploadClientInterface
	drive      DriveServiceInterface // nil when the drive channel is not configured
	repo       repository.SubmissionRepositoryInterface
	catalog    *models.Catalog
}

// NewTallyService creates a new TallyService
func NewTallyService(
	compositor ImageCompositorInterface,
	uploader UploadClientInterface,
	drive DriveServiceInterface,
	repo repository.SubmissionRepositoryInterface,
	catalog *models.Catalog,
) *TallyService {
	return &TallyService{
		compositor: compositor,
		uploader:   uploader,
		drive:      drive,
		repo:       repo,
		catalog:    catalog,
	}
}

// Download composes the tally image for a local save and records a
// local-save submission. The session returns to idle on completion.
func (t *TallyService) Download(ctx context.Context, sess *Session) ([]byte, string, error) {
	if err := sess.begin(StateGeneratingImage); err != nil {
		return nil, "", err
	}

	counts := sess.Store.Merged()
	data, filename, err := t.compositor.GenerateImage(counts, t.catalog)
	if err != nil {
		sess.finish(err.Error())
		return nil, "", err
	}

	t.recordOutcome(ctx, counts, models.ChannelLocalSave, true)
	sess.finish("")
	return data, filename, nil
}

// Send composes the tally image and delivers it over the chosen channel
// (discord by default), recording the outcome regardless of delivery
// success
func (t *TallyService) Send(ctx context.Context, sess *Session, message, channel string) (*models.SendResponse, error) {
	if channel == "" {
		channel = models.ChannelDiscord
	}

	if err := sess.begin(StateGeneratingImage); err != nil {
		return nil, err
	}

	// Validated inside the action so a rejected channel still becomes the
	// session's latest outcome, replacing any earlier error
	if channel != models.ChannelDiscord && channel != models.ChannelDrive {
		err := fmt.Errorf("unsupported delivery channel: %s", channel)
		sess.finish(err.Error())
		return nil, err
	}

	counts := sess.Store.Merged()
	data, filename, err := t.compositor.GenerateImage(counts, t.catalog)
	if err != nil {
		sess.finish(err.Error())
		return nil, err
	}

	sess.advance(StateUploading)
	result := t.deliver(ctx, channel, data, filename, message)

	t.recordOutcome(ctx, counts, channel, result.Success)

	if result.Success {
		sess.finish("")
	} else {
		sess.finish(result.Error)
	}
	return &models.SendResponse{Filename: filename, Result: *result}, nil
}

// Reset clears the session's counts. It is only available from idle and
// proceeds only when confirmed; a declined reset leaves state unchanged.
func (t *TallyService) Reset(sess *Session, confirm bool) (bool, error) {
	if err := sess.begin(StateIdle); err != nil {
		return false, err
	}
	defer sess.finish("")

	if !confirm {
		return false, nil
	}
	sess.Store.Reset()
	log.Printf("✓ Counts reset for session %s", sess.ID)
	return true, nil
}

func (t *TallyService) deliver(ctx context.Context, channel string, data []byte, filename, message string) *models.UploadResult {
	switch channel {
	case models.ChannelDrive:
		if t.drive == nil {
			return &models.UploadResult{Success: false, Error: "drive channel is not configured"}
		}
		fileID, err := t.drive.ArchiveImage(ctx, data, filename)
		if err != nil {
			return &models.UploadResult{Success: false, Error: err.Error()}
		}
		return &models.UploadResult{Success: true, MessageID: fileID}
	default:
		return t.uploader.UploadImage(ctx, data, filename, message)
	}
}

// recordOutcome writes the submission best-effort: recorder failures are
// logged and never abort the user-facing flow
func (t *TallyService) recordOutcome(ctx context.Context, counts map[string]int, channel string, success bool) {
	_, err := t.repo.Record(ctx, counts, models.RecordOptions{
		Channel: channel,
		Success: success,
	})
	if err != nil {
		log.Printf("⚠️  Warning: failed to record submission (channel=%s): %v", channel, err)
	}
}

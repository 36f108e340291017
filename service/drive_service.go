package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService archives generated tally images into a Google Drive folder
// Implements DriveServiceInterface
type DriveService struct {
	client   *drive.Service
	folderID string
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath, folderID string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// ArchiveImage uploads the image bytes into the configured folder and
// returns the Drive file ID
func (ds *DriveService) ArchiveImage(ctx context.Context, imageData []byte, filename string) (string, error) {
	file := &drive.File{
		Name:     filename,
		MimeType: "image/png",
	}
	if ds.folderID != "" {
		file.Parents = []string{ds.folderID}
	}

	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(imageData)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload image to drive: %w", err)
	}

	log.Printf("✓ Image archived to Drive: %s (file id %s)", filename, created.Id)
	return created.Id, nil
}

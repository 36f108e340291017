package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"regexp"
	"time"

	"github.com/boazcstrike/silayan-laundry/models"
)

const (
	// Discord rejects attachments above 8 MiB on webhook uploads
	maxPayloadBytes = 8 << 20

	defaultUploadMessage = "Silayan Laundry tally sheet"
)

// webhookURLPattern matches the Discord webhook URL shape
var webhookURLPattern = regexp.MustCompile(`^https://(canary\.|ptb\.)?(discord|discordapp)\.com/api/webhooks/\d+/[A-Za-z0-9_-]+$`)

// UploadClientConfig holds the delivery and retry settings
type UploadClientConfig struct {
	WebhookURL string
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// UploadClient delivers tally images to a Discord webhook, retrying
// transient failures a bounded number of times
// Implements UploadClientInterface
type UploadClient struct {
	cfg    UploadClientConfig
	client *http.Client
}

// NewUploadClient creates an UploadClient. A nil httpClient falls back
// to a default client; per-attempt timeouts are applied via context.
func NewUploadClient(cfg UploadClientConfig, httpClient *http.Client) *UploadClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &UploadClient{cfg: cfg, client: httpClient}
}

// Ensure UploadClient implements UploadClientInterface
var _ UploadClientInterface = (*UploadClient)(nil)

// ValidateConfig reports configuration errors as human-readable strings
func (u *UploadClient) ValidateConfig() []string {
	var errs []string
	if u.cfg.WebhookURL == "" {
		errs = append(errs, "webhook URL is not configured")
	} else if !webhookURLPattern.MatchString(u.cfg.WebhookURL) {
		errs = append(errs, "webhook URL does not match the Discord webhook format")
	}
	return errs
}

// UploadImage attempts delivery up to 1+MaxRetries times. Validation
// failures (bad URL, oversized payload) return immediately without any
// network call. On success the remote message ID is parsed best-effort
// from the response body.
func (u *UploadClient) UploadImage(ctx context.Context, imageData []byte, filename, message string) *models.UploadResult {
	if errs := u.ValidateConfig(); len(errs) > 0 {
		return &models.UploadResult{Success: false, Error: errs[0]}
	}
	if len(imageData) > maxPayloadBytes {
		return &models.UploadResult{
			Success: false,
			Error:   fmt.Sprintf("image size %d bytes exceeds the %d byte limit", len(imageData), maxPayloadBytes),
		}
	}

	if message == "" {
		message = defaultUploadMessage
	}

	attempts := u.cfg.MaxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := u.attemptUpload(ctx, imageData, filename, message)
		if err == nil {
			log.Printf("✓ Upload succeeded on attempt %d/%d (status %d)", attempt, attempts, result.StatusCode)
			return result
		}

		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("⚠️  Upload attempt %d/%d timed out after %s", attempt, attempts, u.cfg.Timeout)
		} else {
			log.Printf("⚠️  Upload attempt %d/%d failed: %v", attempt, attempts, err)
		}

		if attempt < attempts {
			time.Sleep(u.cfg.RetryDelay)
		}
	}

	log.Printf("❌ Upload failed after %d attempts", attempts)
	return &models.UploadResult{Success: false, Error: "Upload failed after all retry attempts"}
}

// attemptUpload performs a single webhook POST under the configured
// per-attempt timeout
func (u *UploadClient) attemptUpload(ctx context.Context, imageData []byte, filename, message string) (*models.UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
	defer cancel()

	body, contentType, err := buildMultipartBody(imageData, filename, message)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.WebhookURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	result := &models.UploadResult{Success: true, StatusCode: resp.StatusCode}

	// Message ID is best-effort: an unparseable body still counts as success
	respBody, err := io.ReadAll(resp.Body)
	if err == nil {
		var payload struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(respBody, &payload); err == nil {
			result.MessageID = payload.ID
		}
	}

	return result, nil
}

func buildMultipartBody(imageData []byte, filename, message string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filePart, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := filePart.Write(imageData); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	payload, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := writer.WriteField("payload_json", string(payload)); err != nil {
		return nil, "", fmt.Errorf("failed to write payload part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

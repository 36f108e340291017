package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookURL = "https://discord.com/api/webhooks/123456789/aBcDeFgH_iJkLmNoP-qRsTuV"

// roundTripperFunc lets tests stand in for the webhook transport
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestUploadClient(rt roundTripperFunc, maxRetries int) *UploadClient {
	return NewUploadClient(UploadClientConfig{
		WebhookURL: testWebhookURL,
		MaxRetries: maxRetries,
		RetryDelay: time.Millisecond,
		Timeout:    time.Second,
	}, &http.Client{Transport: rt})
}

func TestUploadClient_ValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "valid webhook URL", url: testWebhookURL},
		{name: "missing URL", url: "", wantErr: "webhook URL is not configured"},
		{name: "wrong host", url: "https://example.com/api/webhooks/1/token", wantErr: "webhook URL does not match the Discord webhook format"},
		{name: "wrong path", url: "https://discord.com/api/channels/1/token", wantErr: "webhook URL does not match the Discord webhook format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewUploadClient(UploadClientConfig{WebhookURL: tt.url}, nil)
			errs := client.ValidateConfig()
			if tt.wantErr == "" {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, tt.wantErr, errs[0])
			}
		})
	}
}

func TestUploadClient_OversizedPayloadSkipsNetwork(t *testing.T) {
	calls := 0
	client := newTestUploadClient(func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `{}`), nil
	}, 3)

	payload := bytes.Repeat([]byte{0xff}, maxPayloadBytes+1)
	result := client.UploadImage(context.Background(), payload, "big.png", "")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "exceeds")
	assert.Equal(t, 0, calls, "oversized payload must never reach the transport")
}

func TestUploadClient_BadConfigSkipsNetwork(t *testing.T) {
	calls := 0
	client := NewUploadClient(UploadClientConfig{WebhookURL: "https://example.com/nope"}, &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusOK, `{}`), nil
		}),
	})

	result := client.UploadImage(context.Background(), []byte("img"), "f.png", "")
	assert.False(t, result.Success)
	assert.Equal(t, 0, calls)
}

func TestUploadClient_SucceedsOnThirdAttempt(t *testing.T) {
	calls := 0
	client := newTestUploadClient(func(*http.Request) (*http.Response, error) {
		calls++
		if calls < 3 {
			return jsonResponse(http.StatusBadGateway, `{}`), nil
		}
		return jsonResponse(http.StatusOK, `{"id":"1131415926535"}`), nil
	}, 3)

	result := client.UploadImage(context.Background(), []byte("img"), "f.png", "laundry day")

	assert.True(t, result.Success)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "1131415926535", result.MessageID)
	assert.Equal(t, 3, calls)
}

func TestUploadClient_ExhaustsRetries(t *testing.T) {
	calls := 0
	client := newTestUploadClient(func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusInternalServerError, `{}`), nil
	}, 2)

	result := client.UploadImage(context.Background(), []byte("img"), "f.png", "")

	assert.False(t, result.Success)
	assert.Equal(t, "Upload failed after all retry attempts", result.Error)
	assert.Equal(t, 3, calls, "maxRetries=2 means exactly 3 invocations")
}

func TestUploadClient_TimedOutAttemptIsRetried(t *testing.T) {
	calls := 0
	client := NewUploadClient(UploadClientConfig{
		WebhookURL: testWebhookURL,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
		Timeout:    20 * time.Millisecond,
	}, &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		// Hang until the per-attempt deadline fires
		<-r.Context().Done()
		return nil, r.Context().Err()
	})})

	start := time.Now()
	result := client.UploadImage(context.Background(), []byte("img"), "f.png", "")

	assert.False(t, result.Success)
	assert.Equal(t, "Upload failed after all retry attempts", result.Error)
	assert.Equal(t, 2, calls, "a timed-out attempt counts like any other failed attempt")
	assert.Less(t, time.Since(start), time.Second, "the per-attempt timeout bounds each try")
}

func TestUploadClient_UnparseableBodyStillSucceeds(t *testing.T) {
	client := newTestUploadClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNoContent, "not json"), nil
	}, 0)

	result := client.UploadImage(context.Background(), []byte("img"), "f.png", "")

	assert.True(t, result.Success)
	assert.Equal(t, http.StatusNoContent, result.StatusCode)
	assert.Empty(t, result.MessageID)
}

func TestUploadClient_SendsMultipartBody(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	client := newTestUploadClient(func(r *http.Request) (*http.Response, error) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		return jsonResponse(http.StatusOK, `{}`), nil
	}, 0)

	client.UploadImage(context.Background(), []byte("img-bytes"), "tally.png", "")

	assert.Contains(t, gotContentType, "multipart/form-data")
	assert.Contains(t, string(gotBody), `filename="tally.png"`)
	assert.Contains(t, string(gotBody), "img-bytes")
	// Default message is applied when none is given
	assert.Contains(t, string(gotBody), defaultUploadMessage)
}

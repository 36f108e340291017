package models

// UploadResult represents the outcome of one delivery attempt sequence.
// Example success: {"success": true, "statusCode": 200, "messageId": "1131..."}
// Example failure: {"success": false, "error": "Upload failed after all retry attempts"}
type UploadResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode,omitempty"`
	MessageID  string `json:"messageId,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SendRequest represents the request body for the send action
type SendRequest struct {
	Message string `json:"message,omitempty"`
	Channel string `json:"channel,omitempty"`
}

// SendResponse wraps the upload outcome together with the filename that
// was generated for the tally image
type SendResponse struct {
	Filename string       `json:"filename"`
	Result   UploadResult `json:"result"`
}

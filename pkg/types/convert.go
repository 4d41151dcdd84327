package types

// ConvertRequest is the request body for a conversion.
type ConvertRequest struct {
	// PDF is the base64-encoded source document.
	PDF string `json:"pdf"`
}

// ConvertResponse is the result of a conversion.
type ConvertResponse struct {
	Success bool   `json:"success"`
	PDF     string `json:"pdf,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ConversionRecord is one row of the conversion audit log.
type ConversionRecord struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	ErrorKind   string `json:"errorKind,omitempty"`
	DurationMs  int    `json:"durationMs"`
	InputBytes  int    `json:"inputBytes"`
	OutputBytes int    `json:"outputBytes"`
	CreatedAt   string `json:"createdAt"`
}

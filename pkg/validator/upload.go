package validator

import (
	"errors"
	"net/http"
	"strings"
)

// DefaultMaxPayloadSize bounds an imported catalog document.
const DefaultMaxPayloadSize = 32 * 1024 * 1024 // 32MB

// DefaultAllowedMimeTypes contains the content types accepted for catalog imports.
var DefaultAllowedMimeTypes = map[string]bool{
	"application/json":         true,
	"text/plain":               true,
	"application/octet-stream": true,
}

var (
	ErrEmptyPayload       = errors.New("payload is empty")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrMissingContentType = errors.New("missing content type")
	ErrUnsupportedType    = errors.New("unsupported content type")
)

// PayloadConfig defines constraints for imported documents.
type PayloadConfig struct {
	MaxSize          int64
	AllowedMimeTypes map[string]bool
}

// DefaultPayloadConfig returns the default payload configuration.
func DefaultPayloadConfig() *PayloadConfig {
	return &PayloadConfig{
		MaxSize:          DefaultMaxPayloadSize,
		AllowedMimeTypes: DefaultAllowedMimeTypes,
	}
}

// ValidateSize checks if the payload size is within the allowed limit.
func (c *PayloadConfig) ValidateSize(size int64) error {
	if size <= 0 {
		return ErrEmptyPayload
	}
	if size > c.MaxSize {
		return ErrPayloadTooLarge
	}
	return nil
}

// ValidateMimeType checks if the MIME type is in the allowed whitelist.
func (c *PayloadConfig) ValidateMimeType(mimeType string) error {
	normalized := strings.ToLower(strings.TrimSpace(mimeType))
	if normalized == "" {
		return ErrMissingContentType
	}
	// Handle MIME types with parameters (e.g., "application/json; charset=utf-8")
	if idx := strings.Index(normalized, ";"); idx > 0 {
		normalized = strings.TrimSpace(normalized[:idx])
	}
	if !c.AllowedMimeTypes[normalized] {
		return ErrUnsupportedType
	}
	return nil
}

// Validate performs full validation on a payload. The declared type is
// checked when present, otherwise the type is sniffed from data.
func (c *PayloadConfig) Validate(mimeType string, data []byte) error {
	if err := c.ValidateSize(int64(len(data))); err != nil {
		return err
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = http.DetectContentType(data)
	}
	return c.ValidateMimeType(mimeType)
}

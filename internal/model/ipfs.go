package model

import (
	"encoding/json"
	"errors"
)

// PinRequest represents request for POST /ipfs/pin
type PinRequest struct {
	Name      string            `json:"name"`
	Content   json.RawMessage   `json:"content" swaggertype:"object"`
	Keyvalues map[string]string `json:"keyvalues,omitempty"`
}

// Validate validates PinRequest fields.
func (r *PinRequest) Validate() error {
	if len(r.Content) == 0 {
		return errors.New("content is required")
	}
	if !json.Valid(r.Content) {
		return errors.New("content must be valid JSON")
	}
	return nil
}

// PinResponse represents response for POST /ipfs/pin
type PinResponse struct {
	IpfsHash  string `json:"ipfsHash"`
	PinSize   int64  `json:"pinSize"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

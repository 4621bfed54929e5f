package model

// GenerateResponse is printed by the keygen command.
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Address string `json:"address,omitempty"`
	Path    string `json:"path,omitempty"`
}

package model

import (
	"errors"
	"strings"
)

// StoredProject is a funding project kept in the local project store
type StoredProject struct {
	ID            string  `json:"id"`
	IpfsHash      string  `json:"ipfsHash,omitempty"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	TargetAmount  float64 `json:"targetAmount"`
	APY           float64 `json:"apy"`
	RiskLevel     string  `json:"riskLevel"`
	Duration      int     `json:"duration"`
	MinInvestment float64 `json:"minInvestment"`
	TeamSize      int     `json:"teamSize"`
	CurrentAmount float64 `json:"currentAmount"`
	Lenders       int     `json:"lenders"`
	SCFRound      int     `json:"scfRound"`
	DaysRemaining int     `json:"daysRemaining"`
	CreatedBy     string  `json:"createdBy"`
	CreatedAt     string  `json:"createdAt"`
}

// ProjectRequest represents request for POST /projects
type ProjectRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	TargetAmount  float64 `json:"targetAmount"`
	APY           float64 `json:"apy"`
	RiskLevel     string  `json:"riskLevel"`
	Duration      int     `json:"duration"`
	MinInvestment float64 `json:"minInvestment"`
	TeamSize      int     `json:"teamSize"`
	SCFRound      int     `json:"scfRound"`
	// PinToIPFS also stores the project document on IPFS and records its hash.
	PinToIPFS bool `json:"pinToIpfs"`
}

// Validate validates ProjectRequest fields.
func (r *ProjectRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.TargetAmount < 0 || r.MinInvestment < 0 {
		return errors.New("amounts must not be negative")
	}
	if r.Duration < 0 || r.TeamSize < 0 {
		return errors.New("duration and teamSize must not be negative")
	}
	return nil
}

// ProjectDocument is the document pinned to IPFS for a project
type ProjectDocument struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	TargetAmount  float64 `json:"targetAmount"`
	APY           float64 `json:"apy"`
	RiskLevel     string  `json:"riskLevel"`
	Duration      int     `json:"duration"`
	MinInvestment float64 `json:"minInvestment"`
	TeamSize      int     `json:"teamSize"`
	CreatedBy     string  `json:"createdBy,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

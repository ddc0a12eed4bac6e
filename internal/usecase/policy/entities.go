package policy

import "time"

type CreatePolicyInput struct {
	ID             string
	Holder         string
	TokenID        string
	CoverageAmount float64
	Premium        float64
	StartDate      time.Time
	EndDate        time.Time
	Description    string
	Type           string
}

type CreatePolicyResult struct {
	Success  bool   `json:"success"`
	PolicyID string `json:"policyId"`
	IPFSHash string `json:"ipfsHash,omitempty"`
}

type ListInput struct {
	Holder string
	Status string
}

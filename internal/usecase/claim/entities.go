package claim

type CreateClaimInput struct {
	ID          string
	PolicyID    string
	Claimant    string
	Amount      float64
	Description string
	// Evidence is pinned on IPFS. A string that already is a CID is stored as-is.
	Evidence any
}

type CreateClaimResult struct {
	Success      bool   `json:"success"`
	ClaimID      string `json:"claimId"`
	EvidenceHash string `json:"evidenceHash,omitempty"`
}

// Review decisions accepted by the API.
const (
	DecisionUnderReview = "underReview"
	DecisionApprove     = "approve"
	DecisionReject      = "reject"
)

type ReviewInput struct {
	ClaimID  string
	Decision string
	Reviewer string
	Reason   string
}

type ListInput struct {
	PolicyID string
	Status   string
}

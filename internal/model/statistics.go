package model

// Statistics is a snapshot of the ledger counters
type Statistics struct {
	TotalCount       int64 `json:"total_count"`
	ApprovedCount    int   `json:"approved_count"`
	PendingCount     int   `json:"pending_count"`
	NotApprovedCount int   `json:"not_approved_count"`
}

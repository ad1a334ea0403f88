package models

const (
	StatusFull      = "full"
	StatusDone      = "done"
	StatusAutoCheck = "auto-check"
)

type Report struct {
	ID        int64     `json:"id" db:"id"`
	BinID     int64     `json:"bin_id" db:"bin_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt Timestamp `json:"created_at" db:"created_at"`
	ClearedAt Timestamp `json:"cleared_at" db:"cleared_at"`
}

// CreateReportRequest is the request body for POST /api/reports
type CreateReportRequest struct {
	BinID  int64  `json:"bin_id"`
	Status string `json:"status"`
}

// IsDone reports whether the report reached the terminal state.
func (r Report) IsDone() bool {
	return r.Status == StatusDone
}

// IsCleared is true only when the report is done and carries a clear time.
func (r Report) IsCleared() bool {
	return r.IsDone() && r.ClearedAt.Valid
}

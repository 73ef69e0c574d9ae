package dto

import "time"

// ImportJobDTO estado de un trabajo de importación.
type ImportJobDTO struct {
	ID          string     `json:"id"`
	FileName    string     `json:"file_name"`
	Status      string     `json:"status"` // processing | succeeded | failed
	Processed   int        `json:"processed"`
	Errors      int        `json:"errors"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

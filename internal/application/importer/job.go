package importer

import (
	"time"

	"github.com/jhoicas/financebi-api/internal/application/dto"
)

// JobStatus estado de un trabajo de importación.
type JobStatus string

const (
	JobProcessing JobStatus = "processing"
	JobSucceeded  JobStatus = "succeeded"
	JobFailed     JobStatus = "failed"
)

// Job trabajo de importación. done se cierra una sola vez, al terminar.
type Job struct {
	ID          string
	FileName    string
	Status      JobStatus
	Processed   int
	Errors      int
	Err         string
	StartedAt   time.Time
	CompletedAt time.Time

	done chan struct{}
}

func (j *Job) toDTO() *dto.ImportJobDTO {
	out := &dto.ImportJobDTO{
		ID:        j.ID,
		FileName:  j.FileName,
		Status:    string(j.Status),
		Processed: j.Processed,
		Errors:    j.Errors,
		Error:     j.Err,
		StartedAt: j.StartedAt,
	}
	if !j.CompletedAt.IsZero() {
		completed := j.CompletedAt
		out.CompletedAt = &completed
	}
	return out
}

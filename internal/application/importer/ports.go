package importer

import (
	"context"

	"github.com/jhoicas/financebi-api/internal/domain/entity"
)

// Refresher produce el snapshot actualizado a partir del actual.
// El resultado debe cumplir el invariante de mora de cada cliente.
type Refresher interface {
	Refresh(ctx context.Context, clients []entity.Client) ([]entity.Client, error)
}

// JobRequest mensaje que viaja del Start al runner.
type JobRequest struct {
	JobID    string `json:"job_id"`
	FileName string `json:"file_name"`
}

// Dispatcher entrega el trabajo al runner (goroutine local o broker).
type Dispatcher interface {
	Dispatch(ctx context.Context, req JobRequest) error
}

// Runner ejecuta un trabajo ya registrado.
type Runner interface {
	Run(ctx context.Context, jobID string) error
}

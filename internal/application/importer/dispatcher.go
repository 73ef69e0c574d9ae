package importer

import "context"

var _ Dispatcher = (*LocalDispatcher)(nil)

// LocalDispatcher ejecuta el trabajo en una goroutine del proceso.
// Los trabajos heredan base, no el contexto de la petición HTTP que los creó.
type LocalDispatcher struct {
	base   context.Context
	runner Runner
}

// NewLocalDispatcher construye el dispatcher. Cancelar base aborta los trabajos en curso.
func NewLocalDispatcher(base context.Context, runner Runner) *LocalDispatcher {
	return &LocalDispatcher{base: base, runner: runner}
}

// Dispatch lanza el runner y retorna de inmediato.
func (d *LocalDispatcher) Dispatch(_ context.Context, req JobRequest) error {
	go func() { _ = d.runner.Run(d.base, req.JobID) }()
	return nil
}

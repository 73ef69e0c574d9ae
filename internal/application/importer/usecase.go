// Package importer simula la importación de una planilla de clientes: registra
// el trabajo, lo despacha y, tras el tiempo de procesamiento, sustituye el
// snapshot de la cartera por el que produce el Refresher.
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/domain"
	"github.com/jhoicas/financebi-api/internal/domain/entity"
	"github.com/jhoicas/financebi-api/internal/domain/repository"
	"github.com/jhoicas/financebi-api/pkg/logger"
)

// Extensiones aceptadas (sin distinguir mayúsculas).
var acceptedExtensions = map[string]struct{}{
	".csv":  {},
	".xlsx": {},
	".xls":  {},
}

// DefaultRetain trabajos terminados que se conservan para consulta.
const DefaultRetain = 100

// Config parámetros del runner.
type Config struct {
	Delay  time.Duration // tiempo de procesamiento simulado
	Retain int           // trabajos terminados en memoria; 0 = DefaultRetain
}

// UseCase registro de trabajos de importación. Solo un trabajo puede estar en curso.
type UseCase struct {
	repo       repository.ClientRepository
	refresher  Refresher
	delay      time.Duration
	retain     int
	log        *logger.Logger
	dispatcher Dispatcher
	onFinish   func(JobStatus)
	now        func() time.Time

	mu       sync.Mutex
	jobs     map[string]*Job
	finished []string // ids terminados, del más antiguo al más reciente
	active   string
}

// NewUseCase construye el caso de uso con despacho local (goroutine).
func NewUseCase(repo repository.ClientRepository, refresher Refresher, cfg Config, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Retain <= 0 {
		cfg.Retain = DefaultRetain
	}
	uc := &UseCase{
		repo:      repo,
		refresher: refresher,
		delay:     cfg.Delay,
		retain:    cfg.Retain,
		log:       log.Component("importer"),
		onFinish:  func(JobStatus) {},
		now:       time.Now,
		jobs:      make(map[string]*Job),
	}
	uc.dispatcher = NewLocalDispatcher(context.Background(), uc)
	return uc
}

// WithDispatcher reemplaza el despacho local (p. ej. por RabbitMQ).
func (uc *UseCase) WithDispatcher(d Dispatcher) *UseCase {
	uc.dispatcher = d
	return uc
}

// OnFinish registra un callback que recibe el estado final de cada trabajo.
func (uc *UseCase) OnFinish(fn func(JobStatus)) *UseCase {
	uc.onFinish = fn
	return uc
}

// Start valida el archivo, registra el trabajo y lo despacha.
// Retorna ErrImportInProgress si ya hay uno en curso.
func (uc *UseCase) Start(ctx context.Context, fileName string) (*dto.ImportJobDTO, error) {
	name := strings.TrimSpace(filepath.Base(fileName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: archivo sin nombre", domain.ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := acceptedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %w %q (use .csv, .xlsx o .xls)", domain.ErrInvalidInput, domain.ErrUnsupportedFormat, ext)
	}

	uc.mu.Lock()
	if uc.active != "" {
		uc.mu.Unlock()
		return nil, domain.ErrImportInProgress
	}
	job := &Job{
		ID:        uuid.New().String(),
		FileName:  name,
		Status:    JobProcessing,
		StartedAt: uc.now().UTC(),
		done:      make(chan struct{}),
	}
	uc.jobs[job.ID] = job
	uc.active = job.ID
	out := job.toDTO()
	uc.mu.Unlock()

	uc.log.Info().Str("job_id", job.ID).Str("file", name).Msg("importación iniciada")

	if err := uc.dispatcher.Dispatch(ctx, JobRequest{JobID: job.ID, FileName: name}); err != nil {
		uc.finish(job.ID, JobFailed, outcome{}, err)
		return nil, fmt.Errorf("despachar importación: %w", err)
	}
	return out, nil
}

// Run espera el tiempo de procesamiento, refresca el snapshot y completa el trabajo.
// Un trabajo ya terminado no se vuelve a ejecutar.
func (uc *UseCase) Run(ctx context.Context, jobID string) error {
	uc.mu.Lock()
	job, ok := uc.jobs[jobID]
	pending := ok && job.Status == JobProcessing
	uc.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: trabajo %s", domain.ErrNotFound, jobID)
	}
	if !pending {
		return nil
	}

	timer := time.NewTimer(uc.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		uc.finish(jobID, JobFailed, outcome{}, fmt.Errorf("importación cancelada: %w", ctx.Err()))
		return ctx.Err()
	case <-timer.C:
	}

	res, err := uc.refresh(ctx, jobID)
	if err != nil {
		uc.finish(jobID, JobFailed, res, err)
		return err
	}
	uc.finish(jobID, JobSucceeded, res, nil)
	return nil
}

// outcome conteo de registros de un trabajo.
type outcome struct {
	processed int
	rejected  int
}

// refresh aplica el Refresher y guarda el resultado. Un registro inválido o con id
// repetido se rechaza y el cliente conserva su versión anterior.
func (uc *UseCase) refresh(ctx context.Context, jobID string) (outcome, error) {
	current, err := uc.repo.List(ctx)
	if err != nil {
		return outcome{}, fmt.Errorf("leer cartera: %w", err)
	}
	updated, err := uc.refresher.Refresh(ctx, current)
	if err != nil {
		return outcome{}, fmt.Errorf("refrescar cartera: %w", err)
	}

	previous := make(map[string]entity.Client, len(current))
	for _, c := range current {
		previous[c.ID] = c
	}
	var res outcome
	seen := make(map[string]struct{}, len(updated))
	accepted := make([]entity.Client, 0, len(updated))
	for _, c := range updated {
		if _, dup := seen[c.ID]; dup {
			res.rejected++
			uc.log.Warn().Str("job_id", jobID).Str("client_id", c.ID).Msg("registro con id repetido")
			continue
		}
		if err := c.Validate(); err != nil {
			res.rejected++
			uc.log.Warn().Err(err).Str("job_id", jobID).Str("client_id", c.ID).Msg("registro rechazado")
			old, ok := previous[c.ID]
			if !ok {
				continue
			}
			c = old
		} else {
			res.processed++
		}
		seen[c.ID] = struct{}{}
		accepted = append(accepted, c)
	}

	if err := uc.repo.ReplaceAll(ctx, accepted); err != nil {
		return res, fmt.Errorf("guardar cartera: %w", err)
	}
	return res, nil
}

func (uc *UseCase) finish(jobID string, status JobStatus, res outcome, cause error) {
	uc.mu.Lock()
	job, ok := uc.jobs[jobID]
	if !ok || job.Status != JobProcessing {
		uc.mu.Unlock()
		return
	}
	job.Status = status
	job.Processed = res.processed
	job.Errors = res.rejected
	job.CompletedAt = uc.now().UTC()
	if cause != nil {
		job.Err = cause.Error()
	}
	if uc.active == jobID {
		uc.active = ""
	}
	uc.finished = append(uc.finished, jobID)
	for len(uc.finished) > uc.retain {
		delete(uc.jobs, uc.finished[0])
		uc.finished = uc.finished[1:]
	}
	uc.mu.Unlock()
	// Await se libera después del callback, con el trabajo ya contabilizado.
	defer close(job.done)

	ev := uc.log.Info()
	if cause != nil {
		ev = uc.log.Error().Err(cause)
	}
	ev.Str("job_id", jobID).Str("status", string(status)).Int("processed", res.processed).Int("rejected", res.rejected).Msg("importación terminada")
	uc.onFinish(status)
}

// Get devuelve el estado del trabajo o ErrNotFound.
func (uc *UseCase) Get(jobID string) (*dto.ImportJobDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	job, ok := uc.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return job.toDTO(), nil
}

// Await bloquea hasta que el trabajo termina o ctx se cancela.
func (uc *UseCase) Await(ctx context.Context, jobID string) (*dto.ImportJobDTO, error) {
	uc.mu.Lock()
	job, ok := uc.jobs[jobID]
	uc.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	select {
	case <-job.done:
		uc.mu.Lock()
		defer uc.mu.Unlock()
		return job.toDTO(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

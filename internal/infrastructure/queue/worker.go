package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/financebi-api/internal/application/importer"
	"github.com/jhoicas/financebi-api/internal/domain"
	"github.com/jhoicas/financebi-api/pkg/logger"
)

// Consumer subconjunto de *amqp.Channel usado para consumir.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Worker consume q.imports y ejecuta cada trabajo con el runner.
type Worker struct {
	ch     Consumer
	runner importer.Runner
	log    *logger.Logger
}

// NewWorker construye el worker.
func NewWorker(ch Consumer, runner importer.Runner, log *logger.Logger) *Worker {
	return &Worker{ch: ch, runner: runner, log: log.Component("queue.worker")}
}

// Start registra el consumidor y procesa mensajes hasta que ctx se cancela
// o el broker cierra la entrega.
func (w *Worker) Start(ctx context.Context) error {
	msgs, err := w.ch.Consume(
		QueueName,
		"",    // consumer
		false, // auto-ack: confirmamos a mano
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("registrar consumidor: %w", err)
	}

	w.log.Info().Str("queue", QueueName).Msg("worker esperando trabajos")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

// handle ejecuta un mensaje:
//   - JSON inválido o fallo del trabajo: Nack sin requeue (va a la DLQ)
//   - trabajo desconocido (registrado por otra instancia): Ack y se descarta
//   - apagado en curso: Nack con requeue
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var req importer.JobRequest
	if err := json.Unmarshal(d.Body, &req); err != nil || req.JobID == "" {
		w.log.Error().Err(err).Msg("mensaje inválido")
		_ = d.Nack(false, false)
		return
	}

	err := w.runner.Run(ctx, req.JobID)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, domain.ErrNotFound):
		w.log.Warn().Str("job_id", req.JobID).Msg("trabajo desconocido, se descarta")
		_ = d.Ack(false)
	case ctx.Err() != nil:
		_ = d.Nack(false, true)
	default:
		w.log.Error().Err(err).Str("job_id", req.JobID).Msg("trabajo fallido")
		_ = d.Nack(false, false)
	}
}

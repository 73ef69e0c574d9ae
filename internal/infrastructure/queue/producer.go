package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/financebi-api/internal/application/importer"
)

var _ importer.Dispatcher = (*Producer)(nil)

// Publisher subconjunto de *amqp.Channel usado para publicar.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Producer publica las solicitudes de importación en ex.imports.
type Producer struct {
	ch Publisher
}

// NewProducer construye el productor sobre un canal abierto.
func NewProducer(ch Publisher) *Producer {
	return &Producer{ch: ch}
}

// Dispatch serializa la solicitud y la publica como mensaje persistente.
func (p *Producer) Dispatch(ctx context.Context, req importer.JobRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("serializar solicitud: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    req.JobID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publicar en RabbitMQ: %w", err)
	}
	return nil
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/event"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/repository"
	"github.com/tu-usuario/restaurant-inventory/pkg/config"
	"github.com/tu-usuario/restaurant-inventory/pkg/logger"
)

var _ repository.EventPublisher = (*Publisher)(nil)

// Publisher publica los eventos de dominio en el tópico de inventario.
// Entrega al menos una vez: RequiredAcks=all y la clave de partición es el
// id del agregado, así los eventos de un mismo ingrediente o receta se
// consumen en orden.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewPublisher construye el publicador con la configuración de Kafka.
func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.BrokerList()...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
		Transport: &kafka.Transport{
			ClientID: cfg.ClientID,
		},
	}
	return &Publisher{writer: writer, log: log}
}

// Publish serializa el envelope a JSON y lo escribe en el tópico.
func (p *Publisher) Publish(ctx context.Context, envelope event.Envelope) error {
	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", envelope.EventType, err)
	}

	key := envelope.EventID
	if payload, ok := envelope.Payload.(event.Payload); ok {
		key = payload.Key()
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(envelope.EventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish event %s: %w", envelope.EventType, err)
	}

	p.log.Debug().
		Str("event_id", envelope.EventID).
		Str("event_type", envelope.EventType).
		Str("key", key).
		Msg("Evento publicado")
	return nil
}

// Close cierra el writer y libera las conexiones.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

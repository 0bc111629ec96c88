package repository

import (
	"context"

	"github.com/tu-usuario/restaurant-inventory/internal/domain/event"
)

// EventPublisher define el puerto de publicación de eventos de dominio.
// El dominio produce los descriptores como valores de retorno; el adaptador
// (Kafka) es responsable de la entrega al menos una vez.
type EventPublisher interface {
	Publish(ctx context.Context, envelope event.Envelope) error
	Close() error
}

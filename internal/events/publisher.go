package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lavarapido/wash-scheduler/internal/models"
)

// Channel é o canal Redis assinado pelo notificador (entrega de
// mensagens fica fora deste serviço).
const Channel = "appointments.events"

type Event struct {
	Type          string    `json:"type"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	UserID        uuid.UUID `json:"user_id"`
	ServiceID     uuid.UUID `json:"service_id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	At            time.Time `json:"at"`
}

func FromAppointment(eventType string, ap *models.Appointment) Event {
	return Event{
		Type:          eventType,
		AppointmentID: ap.ID,
		UserID:        ap.UserID,
		ServiceID:     ap.ServiceID,
		Date:          ap.Date,
		Time:          ap.Time,
		Status:        ap.Status,
		At:            time.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// RedisPublisher publica eventos de domínio em pub/sub. Falha de
// publicação é registrada e engolida: o evento é melhor-esforço.
type RedisPublisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewRedisPublisher(rdb *redis.Client, log zerolog.Logger) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, log: log}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Str("type", ev.Type).Msg("event marshal failed")
		return
	}

	if err := p.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		p.log.Warn().Err(err).Str("type", ev.Type).Msg("event publish failed")
	}
}

// NopPublisher é usado quando o Redis não está configurado.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}

var (
	_ Publisher = (*RedisPublisher)(nil)
	_ Publisher = NopPublisher{}
)

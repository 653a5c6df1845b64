package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lesson-planner/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventLessonPlanCreated = "lesson_plan_created"

// LessonPlanCreated is the notice emitted after a lesson plan is stored.
// The synthesized content is not included.
type LessonPlanCreated struct {
	Event     string     `json:"event"`
	ID        uint       `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Subject   string     `json:"subject"`
	Grade     string     `json:"grade"`
	Topic     string     `json:"topic"`
	Duration  int        `json:"duration"`
	CreatedAt time.Time  `json:"created_at"`
}

type Publisher interface {
	PublishLessonPlanCreated(ctx context.Context, evt LessonPlanCreated) error
}

// MessagePublisher is the transport an MQTTPublisher writes to. *mqtt.Client satisfies it.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, qos byte, retained bool, payload []byte) error
}

type MQTTPublisher struct {
	client MessagePublisher
	topic  string
}

func NewMQTTPublisher(client MessagePublisher, topic string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic}
}

func (p *MQTTPublisher) PublishLessonPlanCreated(ctx context.Context, evt LessonPlanCreated) error {
	evt.Event = EventLessonPlanCreated
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := p.client.Publish(ctx, p.topic, 1, false, payload); err != nil {
		return err
	}

	logger.Debug("Event published",
		zap.String("event", EventLessonPlanCreated),
		zap.String("topic", p.topic),
		zap.Uint("lesson_plan_id", evt.ID),
	)
	return nil
}

// LogPublisher records events in the application log when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) PublishLessonPlanCreated(_ context.Context, evt LessonPlanCreated) error {
	logger.Info("Lesson plan created",
		zap.String("event", EventLessonPlanCreated),
		zap.Uint("lesson_plan_id", evt.ID),
		zap.String("subject", evt.Subject),
		zap.String("topic", evt.Topic),
	)
	return nil
}

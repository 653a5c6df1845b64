package lessonplan

import (
	"context"
	"fmt"
	"strings"

	domainLessonPlan "lesson-planner/internal/domain/lessonplan"
	"lesson-planner/internal/events"
	"lesson-planner/internal/export"
	"lesson-planner/internal/logger"
	"lesson-planner/internal/planner"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements lesson plan use cases. Every read is scoped to the
// requesting user: a plan owned by someone else is reported as not found.
type Service struct {
	repo      domainLessonPlan.Repository
	exporter  *export.Exporter
	publisher events.Publisher
}

func NewService(repo domainLessonPlan.Repository, exporter *export.Exporter, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &Service{
		repo:      repo,
		exporter:  exporter,
		publisher: publisher,
	}
}

// Generate validates the submission, synthesizes the document and stores
// it for userID. Nothing is stored when validation fails.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, form planner.Form) (*LessonPlanResponse, error) {
	in, err := planner.ParseForm(form)
	if err != nil {
		return nil, err
	}

	owner := userID
	plan := &domainLessonPlan.LessonPlan{
		UserID:              &owner,
		Subject:             in.Subject,
		Grade:               in.Grade,
		Topic:               in.Topic,
		Duration:            in.Duration,
		Content:             planner.Synthesize(in),
		TeacherActions:      in.TeacherActions,
		StudentRequirements: in.StudentRequirements,
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save lesson plan: %w", err)
	}

	logger.Info("Lesson plan generated",
		zap.String("request_id", logger.RequestIDFromContext(ctx)),
		zap.Uint("lesson_plan_id", plan.ID),
		zap.String("user_id", userID.String()),
		zap.String("subject", plan.Subject),
		zap.String("event", events.EventLessonPlanCreated),
	)

	evt := events.LessonPlanCreated{
		ID:        plan.ID,
		UserID:    plan.UserID,
		Subject:   plan.Subject,
		Grade:     plan.Grade,
		Topic:     plan.Topic,
		Duration:  plan.Duration,
		CreatedAt: plan.CreatedAt,
	}
	if err := s.publisher.PublishLessonPlanCreated(ctx, evt); err != nil {
		logger.Warn("Failed to publish lesson plan event",
			zap.String("request_id", logger.RequestIDFromContext(ctx)),
			zap.Uint("lesson_plan_id", plan.ID),
			zap.Error(err),
		)
	}

	return ToLessonPlanResponse(plan), nil
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID, id uint) (*LessonPlanResponse, error) {
	plan, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ToLessonPlanResponse(plan), nil
}

// ListRecent returns the user's most recent plans, newest first.
func (s *Service) ListRecent(ctx context.Context, userID uuid.UUID) ([]*LessonPlanSummary, error) {
	plans, err := s.repo.ListRecentByUser(ctx, userID, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list lesson plans: %w", err)
	}
	return ToLessonPlanSummaries(plans), nil
}

// Export renders a stored plan. When the requested format is unavailable
// the returned artifact is the plain text content.
func (s *Service) Export(ctx context.Context, userID uuid.UUID, id uint, format export.Format) (*export.Artifact, error) {
	plan, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	artifact, err := s.exporter.Export(format, export.Document{
		ID:   plan.ID,
		Text: plan.Content,
		Meta: &export.Metadata{
			Subject:  plan.Subject,
			Grade:    plan.Grade,
			Topic:    plan.Topic,
			Duration: plan.Duration,
		},
	})
	if err != nil {
		return nil, err
	}
	if artifact.Degraded {
		logger.Warn("Lesson plan exported as plain text",
			zap.String("request_id", logger.RequestIDFromContext(ctx)),
			zap.Uint("lesson_plan_id", plan.ID),
			zap.String("requested_format", string(format)),
			zap.String("event", "lesson_plan_export_degraded"),
		)
	}
	return artifact, nil
}

func (s *Service) SuggestRequirements(topic string) *RequirementsResponse {
	topic = strings.TrimSpace(topic)
	return &RequirementsResponse{
		Topic:        topic,
		Requirements: planner.InferRequirements(topic),
	}
}

func (s *Service) getOwned(ctx context.Context, userID uuid.UUID, id uint) (*domainLessonPlan.LessonPlan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !plan.OwnedBy(userID) {
		logger.Warn("Lesson plan requested by non-owner",
			zap.Uint("lesson_plan_id", id),
			zap.String("user_id", userID.String()),
			zap.String("event", "lesson_plan_access_denied"),
		)
		return nil, domainLessonPlan.ErrLessonPlanNotFound
	}
	return plan, nil
}

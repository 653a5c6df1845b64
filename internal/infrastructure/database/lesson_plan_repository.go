package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lesson-planner/internal/domain/lessonplan"
	"lesson-planner/internal/infrastructure/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonPlanRepository implements lessonplan.Repository on gorm. Reads are
// not scoped by owner; ownership is checked by the caller.
type LessonPlanRepository struct {
	db *DB
}

func NewLessonPlanRepository(db *DB) *LessonPlanRepository {
	return &LessonPlanRepository{db: db}
}

func (r *LessonPlanRepository) Create(ctx context.Context, p *lessonplan.LessonPlan) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	dbModel := toLessonPlanModel(p)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create lesson plan: %w", err)
	}

	p.ID = dbModel.ID
	p.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *LessonPlanRepository) GetByID(ctx context.Context, id uint) (*lessonplan.LessonPlan, error) {
	var dbModel models.LessonPlanModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, lessonplan.ErrLessonPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson plan: %w", err)
	}

	return toLessonPlanEntity(&dbModel), nil
}

func (r *LessonPlanRepository) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*lessonplan.LessonPlan, error) {
	var dbModels []models.LessonPlanModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lesson plans: %w", err)
	}

	plans := make([]*lessonplan.LessonPlan, len(dbModels))
	for i := range dbModels {
		plans[i] = toLessonPlanEntity(&dbModels[i])
	}

	return plans, nil
}

func toLessonPlanModel(p *lessonplan.LessonPlan) *models.LessonPlanModel {
	return &models.LessonPlanModel{
		ID:                  p.ID,
		UserID:              p.UserID,
		Subject:             p.Subject,
		Grade:               p.Grade,
		Topic:               p.Topic,
		Duration:            p.Duration,
		Content:             p.Content,
		TeacherActions:      p.TeacherActions,
		StudentRequirements: p.StudentRequirements,
		CreatedAt:           p.CreatedAt,
	}
}

func toLessonPlanEntity(m *models.LessonPlanModel) *lessonplan.LessonPlan {
	return &lessonplan.LessonPlan{
		ID:                  m.ID,
		UserID:              m.UserID,
		Subject:             m.Subject,
		Grade:               m.Grade,
		Topic:               m.Topic,
		Duration:            m.Duration,
		Content:             m.Content,
		TeacherActions:      m.TeacherActions,
		StudentRequirements: m.StudentRequirements,
		CreatedAt:           m.CreatedAt,
	}
}

package lessonplan

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence operations for lesson plans. There is
// no update or delete: plans are immutable once created.
type Repository interface {
	Create(ctx context.Context, plan *LessonPlan) error
	GetByID(ctx context.Context, id uint) (*LessonPlan, error)
	ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*LessonPlan, error)
}

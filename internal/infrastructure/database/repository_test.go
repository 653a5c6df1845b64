package database

import (
	"context"
	"testing"
	"time"

	"lesson-planner/internal/config"
	"lesson-planner/internal/domain/lessonplan"
	"lesson-planner/internal/domain/user"
	"lesson-planner/internal/infrastructure/database/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(&config.Config{
		Server:   config.ServerConfig{Environment: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	return db
}

func createUser(t *testing.T, repo *UserRepository, username string) *user.User {
	t.Helper()
	u := &user.User{
		Username:       username,
		Email:          username + "@example.com",
		PasswordHashed: "hash",
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := createUser(t, repo, "ada")
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.True(t, u.IsActive)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byName, err := repo.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", byID.Username)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepositoryRejectsDuplicates(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createUser(t, repo, "ada")

	err := repo.Create(context.Background(), &user.User{
		Username:       "ada",
		Email:          "other@example.com",
		PasswordHashed: "hash",
	})
	assert.ErrorIs(t, err, user.ErrUserAlreadyExists)
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	u := createUser(t, repo, "ada")

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new-hash"))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHashed)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, uuid.New(), "x"), user.ErrUserNotFound)
}

func TestUserRepositoryLatestResetCode(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	u := createUser(t, repo, "ada")

	_, err := repo.GetLatestPasswordResetCode(ctx, u.ID)
	assert.ErrorIs(t, err, user.ErrResetCodeNotFound)

	now := time.Now()
	require.NoError(t, repo.CreatePasswordResetCode(ctx, &user.PasswordResetCode{
		UserID: u.ID, Code: "older", CreatedAt: now.Add(-2 * time.Hour),
	}))
	require.NoError(t, repo.CreatePasswordResetCode(ctx, &user.PasswordResetCode{
		UserID: u.ID, Code: "newest", CreatedAt: now,
	}))
	require.NoError(t, repo.CreatePasswordResetCode(ctx, &user.PasswordResetCode{
		UserID: u.ID, Code: "middle", CreatedAt: now.Add(-time.Hour),
	}))

	latest, err := repo.GetLatestPasswordResetCode(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "newest", latest.Code)
}

func TestLessonPlanRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	plans := NewLessonPlanRepository(db)
	ctx := context.Background()

	u := createUser(t, users, "ada")
	plan := &lessonplan.LessonPlan{
		UserID:   &u.ID,
		Subject:  "Math",
		Grade:    "5",
		Topic:    "Fractions",
		Duration: 45,
		Content:  "Duration: 45 minutes",
	}
	require.NoError(t, plans.Create(ctx, plan))
	assert.NotZero(t, plan.ID)
	assert.False(t, plan.CreatedAt.IsZero())

	got, err := plans.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, got.Duration)
	assert.True(t, got.OwnedBy(u.ID))

	_, err = plans.GetByID(ctx, plan.ID+100)
	assert.ErrorIs(t, err, lessonplan.ErrLessonPlanNotFound)
}

func TestLessonPlanRepositoryListRecentByUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	plans := NewLessonPlanRepository(db)
	ctx := context.Background()

	ada := createUser(t, users, "ada")
	bob := createUser(t, users, "bob")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		require.NoError(t, plans.Create(ctx, &lessonplan.LessonPlan{
			UserID: &ada.ID, Subject: "Math", Grade: "5", Topic: "T", Duration: i + 1,
			Content: "c", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, plans.Create(ctx, &lessonplan.LessonPlan{
		UserID: &bob.ID, Subject: "Art", Grade: "2", Topic: "T", Duration: 30, Content: "c",
	}))

	recent, err := plans.ListRecentByUser(ctx, ada.ID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, 12, recent[0].Duration)
	assert.Equal(t, 3, recent[9].Duration)
	for _, p := range recent {
		assert.True(t, p.OwnedBy(ada.ID))
	}
}

func TestLessonPlanSurvivesOwnerDeletion(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	plans := NewLessonPlanRepository(db)
	ctx := context.Background()

	u := createUser(t, users, "ada")
	plan := &lessonplan.LessonPlan{
		UserID: &u.ID, Subject: "Math", Grade: "5", Topic: "Fractions", Duration: 45, Content: "c",
	}
	require.NoError(t, plans.Create(ctx, plan))

	require.NoError(t, db.DB.Delete(&models.UserModel{}, "id = ?", u.ID).Error)

	got, err := plans.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.False(t, got.OwnedBy(u.ID))
}

func TestLessonPlanRejectsNonPositiveDuration(t *testing.T) {
	plans := NewLessonPlanRepository(newTestDB(t))

	err := plans.Create(context.Background(), &lessonplan.LessonPlan{
		Subject: "Math", Grade: "5", Topic: "Fractions", Duration: 0, Content: "c",
	})
	assert.Error(t, err)
}

package user

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"lesson-planner/internal/config"
	domainUser "lesson-planner/internal/domain/user"
	appErrors "lesson-planner/pkg/errors"
	"lesson-planner/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domainUser.User
	codes []*domainUser.PasswordResetCode
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[uuid.UUID]*domainUser.User{}}
}

func (r *memoryRepo) Create(_ context.Context, u *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domainUser.ErrUserAlreadyExists
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memoryRepo) find(match func(*domainUser.User) bool) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	return r.find(func(u *domainUser.User) bool { return u.Email == email })
}

func (r *memoryRepo) GetByUsername(_ context.Context, username string) (*domainUser.User, error) {
	return r.find(func(u *domainUser.User) bool { return u.Username == username })
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	return r.find(func(u *domainUser.User) bool { return u.ID == id })
}

func (r *memoryRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHashed = hash
	return nil
}

func (r *memoryRepo) CreatePasswordResetCode(_ context.Context, c *domainUser.PasswordResetCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.New()
	copied := *c
	r.codes = append(r.codes, &copied)
	return nil
}

func (r *memoryRepo) GetLatestPasswordResetCode(_ context.Context, userID uuid.UUID) (*domainUser.PasswordResetCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var mine []*domainUser.PasswordResetCode
	for _, c := range r.codes {
		if c.UserID == userID {
			mine = append(mine, c)
		}
	}
	if len(mine) == 0 {
		return nil, domainUser.ErrResetCodeNotFound
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	copied := *mine[0]
	return &copied, nil
}

type recordingMailer struct {
	to    string
	codes []string
}

func (m *recordingMailer) SendResetCode(_ context.Context, to, _ string, code string) error {
	m.to = to
	m.codes = append(m.codes, code)
	return nil
}

func newTestService(t *testing.T) (*Service, *memoryRepo, *recordingMailer) {
	t.Helper()
	repo := newMemoryRepo()
	m := &recordingMailer{}
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 1}}
	return NewService(repo, m, cfg), repo, m
}

func register(t *testing.T, svc *Service) *UserResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username:        "ada",
		Email:           "Ada@Example.com",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc, repo, _ := newTestService(t)

	resp := register(t, svc)
	assert.Equal(t, "ada", resp.Username)
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.True(t, resp.IsActive)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.PasswordHashed)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "correct-horse"))
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterRequest
		code string
	}{
		{
			name: "mismatched confirmation",
			req:  RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "correct-horse", ConfirmPassword: "other-horse"},
			code: appErrors.CodeValidation,
		},
		{
			name: "bad email",
			req:  RegisterRequest{Username: "ada", Email: "not-an-email", Password: "correct-horse", ConfirmPassword: "correct-horse"},
			code: appErrors.CodeValidation,
		},
		{
			name: "numeric password",
			req:  RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "12345678", ConfirmPassword: "12345678"},
			code: appErrors.CodeWeakPassword,
		},
		{
			name: "password equals username",
			req:  RegisterRequest{Username: "adalovelace", Email: "ada@example.com", Password: "AdaLovelace", ConfirmPassword: "AdaLovelace"},
			code: appErrors.CodeWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			req := tt.req
			_, err := svc.Register(context.Background(), &req)
			assert.True(t, appErrors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "ada", Email: "other@example.com", Password: "correct-horse", ConfirmPassword: "correct-horse",
	})
	assert.ErrorIs(t, err, domainUser.ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	registered := register(t, svc)

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "ada", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resp.User.ID)

	claims, err := utils.ValidateToken(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)

	_, err = svc.Login(context.Background(), &LoginRequest{Username: "ada", Password: "wrong-horse"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{Username: "bob", Password: "correct-horse"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestForgotPasswordIssuesCode(t *testing.T) {
	svc, repo, m := newTestService(t)
	registered := register(t, svc)

	require.NoError(t, svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "ada@example.com"}))

	require.Len(t, m.codes, 1)
	assert.Equal(t, "ada@example.com", m.to)
	assert.Len(t, m.codes[0], utils.ResetCodeLength)

	latest, err := repo.GetLatestPasswordResetCode(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, m.codes[0], latest.Code)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _, m := newTestService(t)

	err := svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "nobody@example.com"})
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeUnknownEmail))
	assert.Equal(t, MsgUnknownEmail, err.Error())
	assert.Empty(t, m.codes)
}

func TestResetPassword(t *testing.T) {
	svc, repo, m := newTestService(t)
	registered := register(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "ada@example.com"}))

	err := svc.ResetPassword(ctx, &ResetPasswordRequest{
		Email: "ada@example.com", Code: m.codes[0], NewPassword: "battery-staple",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(stored.PasswordHashed, "battery-staple"))
}

func TestResetPasswordFailuresKeepPassword(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		code    func(issued string) string
		email   string
		errCode string
		message string
	}{
		{
			name:    "expired code",
			advance: time.Hour + time.Minute,
			code:    func(issued string) string { return issued },
			email:   "ada@example.com",
			errCode: appErrors.CodeCodeExpired,
			message: MsgCodeExpired,
		},
		{
			name:    "wrong code",
			code:    func(issued string) string { return strings.Repeat("x", len(issued)) },
			email:   "ada@example.com",
			errCode: appErrors.CodeInvalidCode,
			message: MsgInvalidCode,
		},
		{
			name:    "unknown email",
			code:    func(issued string) string { return issued },
			email:   "nobody@example.com",
			errCode: appErrors.CodeUnknownEmail,
			message: MsgUnknownEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, m := newTestService(t)
			registered := register(t, svc)
			ctx := context.Background()

			issuedAt := time.Now()
			svc.now = func() time.Time { return issuedAt }
			require.NoError(t, svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "ada@example.com"}))
			svc.now = func() time.Time { return issuedAt.Add(tt.advance) }

			err := svc.ResetPassword(ctx, &ResetPasswordRequest{
				Email: tt.email, Code: tt.code(m.codes[0]), NewPassword: "battery-staple",
			})
			require.Error(t, err)
			assert.True(t, appErrors.IsCode(err, tt.errCode), "got %v", err)
			assert.Equal(t, tt.message, err.Error())

			stored, err := repo.GetByID(ctx, registered.ID)
			require.NoError(t, err)
			assert.True(t, utils.CheckPassword(stored.PasswordHashed, "correct-horse"))
		})
	}
}

func TestResetPasswordChecksLatestCodeOnly(t *testing.T) {
	svc, _, m := newTestService(t)
	register(t, svc)
	ctx := context.Background()

	base := time.Now()
	svc.now = func() time.Time { return base }
	require.NoError(t, svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "ada@example.com"}))
	svc.now = func() time.Time { return base.Add(time.Minute) }
	require.NoError(t, svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "ada@example.com"}))
	require.Len(t, m.codes, 2)

	err := svc.ResetPassword(ctx, &ResetPasswordRequest{
		Email: "ada@example.com", Code: m.codes[0], NewPassword: "battery-staple",
	})
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidCode))

	err = svc.ResetPassword(ctx, &ResetPasswordRequest{
		Email: "ada@example.com", Code: m.codes[1], NewPassword: "battery-staple",
	})
	assert.NoError(t, err)
}

func TestResetPasswordWithoutIssuedCode(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc)

	err := svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Email: "ada@example.com", Code: "ABCDEFGHIJ0123456789", NewPassword: "battery-staple",
	})
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidCode))
}

func TestGetProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	registered := register(t, svc)

	profile, err := svc.GetProfile(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", profile.Username)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)
}

package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"lesson-planner/internal/config"
	domainUser "lesson-planner/internal/domain/user"
	"lesson-planner/internal/logger"
	"lesson-planner/internal/mailer"
	appErrors "lesson-planner/pkg/errors"
	"lesson-planner/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// User-visible messages for the password reset flow.
const (
	MsgUnknownEmail = "No account found with that email."
	MsgCodeExpired  = "Code expired."
	MsgInvalidCode  = "Invalid code."
)

// Service implements account use cases
type Service struct {
	userRepo domainUser.Repository
	mailer   mailer.Mailer
	config   *config.Config
	now      func() time.Time
}

func NewService(userRepo domainUser.Repository, m mailer.Mailer, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		mailer:   m,
		config:   cfg,
		now:      time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	req.Username = utils.SanitizeString(req.Username)
	req.Email = utils.SanitizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password, req.Username); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHashed: hashedPassword,
		IsActive:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			logger.Warn("Registration attempt with existing username or email",
				zap.String("username", req.Username),
				zap.String("email", req.Email),
				zap.String("event", "registration_failed_duplicate"),
			)
		}
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("event", "user_registered"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	req.Username = utils.SanitizeString(req.Username)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with unknown username",
				zap.String("username", req.Username),
				zap.String("event", "login_failed_unknown_user"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_inactive_user"),
		)
		return nil, appErrors.ErrUserInactive
	}

	token, expiresAt, err := utils.GenerateAccessToken(user.ID, user.Username, s.config.JWT.Secret, s.config.JWT.ExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "login_success"),
	)

	return &LoginResponse{
		User:        ToUserResponse(user),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// ForgotPassword issues a new reset code for the account registered under
// the email and hands it to the mailer. Earlier codes are left in place.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	req.Email = utils.SanitizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	user, err := s.lookupByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	resetCode := &domainUser.PasswordResetCode{
		UserID:    user.ID,
		Code:      code,
		CreatedAt: s.now(),
	}
	if err := s.userRepo.CreatePasswordResetCode(ctx, resetCode); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	logger.Info("Password reset code generated",
		zap.String("user_id", user.ID.String()),
		zap.String("code_id", resetCode.ID.String()),
		zap.String("event", "password_reset_code_generated"),
	)

	return s.mailer.SendResetCode(ctx, user.Email, user.Username, code)
}

// ResetPassword replaces the password when code matches the most recent
// code issued to the account and that code is less than an hour old.
// The stored password is untouched on every failure path.
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	req.Email = utils.SanitizeEmail(req.Email)

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	user, err := s.lookupByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	latest, err := s.userRepo.GetLatestPasswordResetCode(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domainUser.ErrResetCodeNotFound) {
			return appErrors.NewAppError(appErrors.CodeInvalidCode, MsgInvalidCode, nil)
		}
		return err
	}

	if subtle.ConstantTimeCompare([]byte(latest.Code), []byte(req.Code)) != 1 {
		logger.Warn("Password reset attempt with invalid code",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_reset_failed_invalid_code"),
		)
		return appErrors.NewAppError(appErrors.CodeInvalidCode, MsgInvalidCode, nil)
	}

	if latest.Expired(s.now()) {
		logger.Warn("Password reset attempt with expired code",
			zap.String("user_id", user.ID.String()),
			zap.String("code_id", latest.ID.String()),
			zap.String("event", "password_reset_failed_expired_code"),
		)
		return appErrors.NewAppError(appErrors.CodeCodeExpired, MsgCodeExpired, nil)
	}

	if err := utils.ValidatePassword(req.NewPassword, user.Username); err != nil {
		return appErrors.NewAppError(appErrors.CodeWeakPassword, err.Error(), nil)
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password reset successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("code_id", latest.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *Service) lookupByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NewAppError(appErrors.CodeUnknownEmail, MsgUnknownEmail, nil)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

package handler

import (
	"errors"
	"net/http"

	domainLessonPlan "lesson-planner/internal/domain/lessonplan"
	domainUser "lesson-planner/internal/domain/user"
	"lesson-planner/internal/logger"
	"lesson-planner/internal/middleware"
	appErrors "lesson-planner/pkg/errors"
	"lesson-planner/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgLessonPlanNotFound = "Lesson plan not found"
	MsgDuplicateAccount   = "Username or email already taken."
)

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domainLessonPlan.ErrLessonPlanNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, MsgLessonPlanNotFound)
	case errors.Is(err, domainUser.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, MsgDuplicateAccount)
	case errors.Is(err, appErrors.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, appErrors.ErrUserInactive):
		utils.ErrorResponse(c, http.StatusForbidden, "Account is inactive")
	case errors.Is(err, domainUser.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "User not found")
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentIdentity aborts with 401 when the request carries no identity.
func currentIdentity(c *gin.Context) (*middleware.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondWithError(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return identity, true
}

package handler

import (
	"fmt"
	"net/http"
	"strconv"

	domainLessonPlan "lesson-planner/internal/domain/lessonplan"
	"lesson-planner/internal/export"
	"lesson-planner/internal/planner"
	"lesson-planner/internal/usecase/lessonplan"
	"lesson-planner/pkg/utils"

	"github.com/gin-gonic/gin"
)

const HeaderExportFallback = "X-Export-Fallback"

type LessonPlanHandler struct {
	service *lessonplan.Service
}

func NewLessonPlanHandler(service *lessonplan.Service) *LessonPlanHandler {
	return &LessonPlanHandler{service: service}
}

func (h *LessonPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/lesson-plans")
	{
		plans.GET("", h.ListRecent)
		plans.POST("", h.Generate)
		plans.GET("/requirements", h.SuggestRequirements)
		plans.GET("/:id", h.Get)
		plans.GET("/:id/pdf", h.exportAs(export.FormatPDF))
		plans.GET("/:id/docx", h.exportAs(export.FormatDOCX))
	}
}

// generateRequest is the form submission. HTML forms signal an immediate
// download by the presence of the download_pdf or download_docx button;
// JSON clients send them as booleans.
type generateRequest struct {
	planner.Form
	DownloadPDF  bool `json:"download_pdf" form:"-"`
	DownloadDOCX bool `json:"download_docx" form:"-"`
}

func (h *LessonPlanHandler) Generate(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req generateRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	plan, err := h.service.Generate(c.Request.Context(), identity.UserID, req.Form)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var format export.Format
	switch {
	case req.DownloadPDF || hasPostField(c, "download_pdf"):
		format = export.FormatPDF
	case req.DownloadDOCX || hasPostField(c, "download_docx"):
		format = export.FormatDOCX
	default:
		utils.SuccessResponse(c, http.StatusCreated, "Lesson plan generated and saved.", plan)
		return
	}

	artifact, err := h.service.Export(c.Request.Context(), identity.UserID, plan.ID, format)
	if err != nil {
		respondWithError(c, err)
		return
	}
	sendArtifact(c, artifact)
}

func (h *LessonPlanHandler) ListRecent(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	plans, err := h.service.ListRecent(c.Request.Context(), identity.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Recent lesson plans retrieved", plans)
}

func (h *LessonPlanHandler) Get(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	id, ok := parsePlanID(c)
	if !ok {
		return
	}

	plan, err := h.service.Get(c.Request.Context(), identity.UserID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Lesson plan retrieved", plan)
}

func (h *LessonPlanHandler) SuggestRequirements(c *gin.Context) {
	if _, ok := currentIdentity(c); !ok {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Requirements suggested", h.service.SuggestRequirements(c.Query("topic")))
}

func (h *LessonPlanHandler) exportAs(format export.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := currentIdentity(c)
		if !ok {
			return
		}

		id, ok := parsePlanID(c)
		if !ok {
			return
		}

		artifact, err := h.service.Export(c.Request.Context(), identity.UserID, id, format)
		if err != nil {
			respondWithError(c, err)
			return
		}
		sendArtifact(c, artifact)
	}
}

// parsePlanID treats a malformed id like an unknown one.
func parsePlanID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondWithError(c, domainLessonPlan.ErrLessonPlanNotFound)
		return 0, false
	}
	return uint(id), true
}

func hasPostField(c *gin.Context, name string) bool {
	_, ok := c.GetPostForm(name)
	return ok
}

func sendArtifact(c *gin.Context, artifact *export.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.FileName))
	c.Header("Content-Length", strconv.Itoa(len(artifact.Body)))
	if artifact.Degraded {
		c.Header(HeaderExportFallback, string(export.FormatText))
	}
	c.Data(http.StatusOK, artifact.ContentType, artifact.Body)
}

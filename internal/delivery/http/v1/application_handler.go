package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	protected.GET("/my-applications", handler.MyApplications)

	applications := protected.Group("/employers/:employerId/jobs/:jobId/applications")
	{
		applications.POST("", handler.Apply)
		applications.GET("", handler.ListForJob)
		applications.PUT("/:applicationId", handler.UpdateStatus)
	}
}

func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	apps, err := h.appUC.MyApplications(c.Request.Context(), uid)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job applications", apps)
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))
	employerID := c.Param("employerId")
	jobID := c.Param("jobId")

	application, err := h.appUC.Apply(c.Request.Context(), uid, employerID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", application)
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))
	employerID := c.Param("employerId")
	jobID := c.Param("jobId")

	apps, err := h.appUC.ListForJob(c.Request.Context(), uid, employerID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job applications", apps)
}

type UpdateStatusRequest struct {
	Status string `json:"application_status" binding:"required"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))
	employerID := c.Param("employerId")
	jobID := c.Param("jobId")
	applicationID := c.Param("applicationId")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	application, err := h.appUC.UpdateStatus(c.Request.Context(), uid, employerID, jobID, applicationID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", application)
}

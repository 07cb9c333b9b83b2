package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobPostHandler struct {
	jobUC domain.JobUsecase
}

func NewJobPostHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobPostHandler{jobUC: jobUC}

	// Public job feed
	public.GET("/job-posts", handler.List)

	jobs := protected.Group("/job-posts")
	{
		jobs.POST("", handler.Create)
		jobs.PUT("/:jobId", handler.Update)
		jobs.DELETE("/:jobId", handler.Delete)
	}
}

func (h *JobPostHandler) List(c *gin.Context) {
	listings, err := h.jobUC.ListJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job posts", listings)
}

type JobPostRequest struct {
	Title       string `json:"job_title" binding:"required"`
	Description string `json:"job_description" binding:"required"`
	// Pointers so a legitimate salary of 0 still satisfies required.
	MinSalary      *float64 `json:"min_salary" binding:"required"`
	MaxSalary      *float64 `json:"max_salary" binding:"required"`
	Location       string   `json:"location" binding:"required"`
	EmploymentType string   `json:"employment_type" binding:"required"`
	SkillsRequired string   `json:"skills_required" binding:"required"`
}

func (h *JobPostHandler) Create(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	var req JobPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	listing, err := h.jobUC.CreateJob(c.Request.Context(), uid, domain.JobPostInput{
		Title:          req.Title,
		Description:    req.Description,
		MinSalary:      *req.MinSalary,
		MaxSalary:      *req.MaxSalary,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SkillsRequired: req.SkillsRequired,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job post created", listing)
}

func (h *JobPostHandler) Update(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))
	jobID := c.Param("jobId")

	var fields domain.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), uid, jobID, fields)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job post updated", job)
}

func (h *JobPostHandler) Delete(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))
	jobID := c.Param("jobId")

	if err := h.jobUC.DeleteJob(c.Request.Context(), uid, jobID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job post deleted", nil)
}

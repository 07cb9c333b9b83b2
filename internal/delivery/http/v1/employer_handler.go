package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type EmployerHandler struct {
	profileUC domain.ProfileUsecase
	jobUC     domain.JobUsecase
}

func NewEmployerHandler(public *gin.RouterGroup, protected *gin.RouterGroup, profileUC domain.ProfileUsecase, jobUC domain.JobUsecase) {
	handler := &EmployerHandler{profileUC: profileUC, jobUC: jobUC}

	// Public sanitized listing
	public.GET("/employers/all", handler.ListAll)

	employers := protected.Group("/employers")
	{
		employers.GET("", handler.Get)
		employers.PUT("", handler.Update)
		employers.DELETE("", handler.Delete)
		employers.PUT("/password", handler.ChangePassword)
		employers.GET("/jobs", handler.OwnedJobs)
	}
}

func (h *EmployerHandler) Get(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.GetProfile(c.Request.Context(), domain.RoleEmployer, uid)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employer profile", profile)
}

func (h *EmployerHandler) Update(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	fields, files, err := profileUpdateInput(c, domain.RoleEmployer)
	if err != nil {
		c.Error(err)
		return
	}
	if len(fields) == 0 && len(files) == 0 {
		c.Error(apperror.BadRequest("No data to update"))
		return
	}

	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), domain.RoleEmployer, uid, fields, files)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employer profile updated", profile)
}

func (h *EmployerHandler) Delete(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	if err := h.profileUC.DeleteProfile(c.Request.Context(), domain.RoleEmployer, uid); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employer account deleted", nil)
}

func (h *EmployerHandler) ChangePassword(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.profileUC.ChangePassword(c.Request.Context(), domain.RoleEmployer, uid, req.CurrentPassword, req.NewPassword); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password updated", nil)
}

func (h *EmployerHandler) ListAll(c *gin.Context) {
	profiles, err := h.profileUC.ListProfiles(c.Request.Context(), domain.RoleEmployer)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employers", profiles)
}

func (h *EmployerHandler) OwnedJobs(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	jobs, err := h.jobUC.ListOwnedJobs(c.Request.Context(), uid)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job posts", jobs)
}

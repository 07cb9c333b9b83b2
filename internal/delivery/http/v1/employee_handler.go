package v1

import (
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	profileUC domain.ProfileUsecase
}

func NewEmployeeHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &EmployeeHandler{profileUC: profileUC}

	employees := protected.Group("/employees")
	{
		employees.GET("", handler.Get)
		employees.PUT("", handler.Update)
		employees.DELETE("", handler.Delete)
		employees.PUT("/password", handler.ChangePassword)
		employees.GET("/all", handler.ListAll)
		employees.GET("/:employeeId", handler.GetByID)
	}
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.GetProfile(c.Request.Context(), domain.RoleEmployee, uid)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employee profile", profile)
}

// profileUpdateInput splits a multipart PUT body into scalar fields and
// validated blob uploads for the given role.
func profileUpdateInput(c *gin.Context, role domain.Role) (domain.Record, map[string]*domain.FileUpload, error) {
	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/form-data") &&
		contentType != "application/x-www-form-urlencoded" {
		// JSON body with scalar fields only
		var fields domain.Record
		if err := c.ShouldBindJSON(&fields); err != nil {
			return nil, nil, apperror.BadRequest(err.Error())
		}
		return fields, nil, nil
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
		return nil, nil, apperror.BadRequest(err.Error())
	}

	fields := domain.Record{}
	if c.Request.MultipartForm != nil {
		for key, values := range c.Request.MultipartForm.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
	} else {
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
	}

	files, err := readBlobUploads(c, role)
	if err != nil {
		return nil, nil, err
	}
	return fields, files, nil
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	fields, files, err := profileUpdateInput(c, domain.RoleEmployee)
	if err != nil {
		c.Error(err)
		return
	}
	if len(fields) == 0 && len(files) == 0 {
		c.Error(apperror.BadRequest("No data to update"))
		return
	}

	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), domain.RoleEmployee, uid, fields, files)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employee profile updated", profile)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	if err := h.profileUC.DeleteProfile(c.Request.Context(), domain.RoleEmployee, uid); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employee account deleted", nil)
}

// ChangePasswordRequest re-authenticates before setting the new password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (h *EmployeeHandler) ChangePassword(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.profileUC.ChangePassword(c.Request.Context(), domain.RoleEmployee, uid, req.CurrentPassword, req.NewPassword); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password updated", nil)
}

func (h *EmployeeHandler) ListAll(c *gin.Context) {
	profiles, err := h.profileUC.ListProfiles(c.Request.Context(), domain.RoleEmployee)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employees", profiles)
}

func (h *EmployeeHandler) GetByID(c *gin.Context) {
	callerUID := c.GetString(string(domain.KeyUserID))
	employeeID := c.Param("employeeId")

	profile, err := h.profileUC.GetEmployeeProfile(c.Request.Context(), callerUID, employeeID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Employee profile", profile)
}

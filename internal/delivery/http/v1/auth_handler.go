package v1

import (
	"io"
	"mime/multipart"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authUC    domain.AuthUsecase
	profileUC domain.ProfileUsecase
	validate  *validator.Validate
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, profileUC domain.ProfileUsecase, validate *validator.Validate, loginLimiter gin.HandlerFunc) {
	handler := &AuthHandler{
		authUC:    authUC,
		profileUC: profileUC,
		validate:  validate,
	}

	// Public Routes
	public.POST("/register", handler.Register)
	public.POST("/login", loginLimiter, handler.Login)
	public.POST("/verify", handler.Verify)
	public.POST("/forgot-password", handler.ForgotPassword)

	// Protected Routes
	protected.POST("/logout", handler.Logout)
	protected.GET("/download/*key", handler.Download)
}

// RegisterForm is bound from the multipart registration request. Role-only
// fields are validated in Register once user_type is known.
type RegisterForm struct {
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	UserType        string `form:"user_type" validate:"required,oneof=employee employer"`
	Name            string `form:"name" validate:"required"`
	PhoneNumber     string `form:"phone_number" validate:"required"`
	Location        string `form:"location" validate:"required"`
	// employee
	Birthday string `form:"birthday"`
	Skills   string `form:"skills"`
	// employer
	Industry          string `form:"industry"`
	ContactPersonName string `form:"contact_person_name"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	if err := h.validate.Struct(form); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	role := domain.Role(form.UserType)
	switch role {
	case domain.RoleEmployee:
		if form.Birthday == "" || form.Skills == "" {
			c.Error(apperror.BadRequest("birthday and skills are required for employees"))
			return
		}
	case domain.RoleEmployer:
		if form.Industry == "" || form.ContactPersonName == "" {
			c.Error(apperror.BadRequest("industry and contact_person_name are required for employers"))
			return
		}
	}

	files, err := readBlobUploads(c, role)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.authUC.SignUp(c.Request.Context(), domain.SignUpInput{
		Email:             form.Email,
		Password:          form.Password,
		Role:              role,
		Name:              form.Name,
		PhoneNumber:       form.PhoneNumber,
		Location:          form.Location,
		Birthday:          form.Birthday,
		Skills:            form.Skills,
		Industry:          form.Industry,
		ContactPersonName: form.ContactPersonName,
		Files:             files,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", result)
}

// readBlobUploads reads the role's optional blob fields from the multipart
// form, validates each and compresses images.
func readBlobUploads(c *gin.Context, role domain.Role) (map[string]*domain.FileUpload, error) {
	files := map[string]*domain.FileUpload{}
	for field := range role.BlobFields() {
		header, err := c.FormFile(field)
		if err != nil {
			continue // field not supplied
		}
		upload, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		files[field] = upload
	}
	return files, nil
}

func readUpload(header *multipart.FileHeader) (*domain.FileUpload, error) {
	if header.Size > validation.MaxUploadSize {
		return nil, apperror.BadRequest("File exceeds the maximum upload size")
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	contentType, err := validation.CheckUpload(header.Filename, data)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if validation.IsImage(contentType) {
		compressed, err := validation.CompressImage(data, 1200, 80)
		if err != nil {
			logger.Log.Warn("image compression failed, storing original", "filename", header.Filename, "error", err)
		} else {
			data = compressed
			contentType = "image/jpeg"
		}
	}

	return &domain.FileUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	out, err := h.authUC.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", out)
}

type VerifyRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	uid, err := h.authUC.VerifyToken(c.Request.Context(), req.IDToken)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Token is valid", gin.H{"uid": uid})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(string(domain.KeyUserID))

	if err := h.authUC.Logout(c.Request.Context(), uid); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out", nil)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// Same response whether or not the email exists, to avoid enumeration.
	if err := h.authUC.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		logger.Log.Warn("password reset request failed", "error", err)
	}

	response.Success(c, http.StatusOK, "If an account with that email exists, a password reset link has been sent.", nil)
}

// Download mints a short-lived signed URL for a stored object and redirects
// to it.
func (h *AuthHandler) Download(c *gin.Context) {
	key := c.Param("key")
	if len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}
	if key == "" {
		c.Error(apperror.BadRequest("Object key is required"))
		return
	}

	url, err := h.profileUC.SignedDownloadURL(c.Request.Context(), key)
	if err != nil {
		c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, url)
}

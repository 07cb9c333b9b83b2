package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testDownloadTTL = 15 * time.Minute

func newProfileUC(userRepo *MockUserRepo, identity *MockIdentity, blobs *MockBlobStore) domain.ProfileUsecase {
	return usecase.NewProfileUsecase(userRepo, identity, blobs, "test-bucket", testAssetTTL, testDownloadTTL)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should merge only the supplied fields", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		identity := new(MockIdentity)
		uc := newProfileUC(userRepo, identity, new(MockBlobStore))

		userRepo.On("Get", ctx, domain.RoleEmployee, "uid-1").Return(domain.Record{
			"name":     "Jane",
			"email":    "jane@example.com",
			"location": "Tokyo",
			"skills":   "Go",
		}, nil)
		userRepo.On("UpdateFields", ctx, domain.RoleEmployee, "uid-1", domain.Record{"location": "Osaka"}).Return(nil)

		merged, err := uc.UpdateProfile(ctx, domain.RoleEmployee, "uid-1", domain.Record{"location": "Osaka"}, nil)
		assert.NoError(t, err)
		assert.Equal(t, "Osaka", merged.Str("location"))
		assert.Equal(t, "Jane", merged.Str("name"), "untouched fields must survive")
		assert.Equal(t, "Go", merged.Str("skills"))
		userRepo.AssertExpectations(t)
	})

	t.Run("Should drop fields outside the updatable set", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newProfileUC(userRepo, new(MockIdentity), new(MockBlobStore))

		userRepo.On("Get", ctx, domain.RoleEmployee, "uid-1").Return(domain.Record{"name": "Jane"}, nil)
		userRepo.On("UpdateFields", ctx, domain.RoleEmployee, "uid-1", domain.Record{"name": "Janet"}).Return(nil)

		_, err := uc.UpdateProfile(ctx, domain.RoleEmployee, "uid-1", domain.Record{
			"name":         "Janet",
			"user_type":    "employer",
			"employee_uid": "other",
			"resume":       "https://forged",
			"resume_key":   "forged/key",
		}, nil)
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should never let a field merge overwrite a child subtree", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newProfileUC(userRepo, new(MockIdentity), new(MockBlobStore))

		userRepo.On("Get", ctx, domain.RoleEmployee, "uid-1").Return(domain.Record{"name": "Jane"}, nil)

		_, err := uc.UpdateProfile(ctx, domain.RoleEmployee, "uid-1", domain.Record{
			"job_applications": "gone",
			"jobs":             map[string]interface{}{},
		}, nil)
		assert.NoError(t, err)
		userRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should propagate an email change to the identity provider first", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		identity := new(MockIdentity)
		uc := newProfileUC(userRepo, identity, new(MockBlobStore))

		userRepo.On("Get", ctx, domain.RoleEmployer, "uid-1").Return(domain.Record{"email": "old@example.com"}, nil)
		identity.On("UpdateEmail", ctx, "uid-1", "new@example.com").Return(errors.New("email already in use"))

		_, err := uc.UpdateProfile(ctx, domain.RoleEmployer, "uid-1", domain.Record{"email": "new@example.com"}, nil)
		assert.Error(t, err)
		userRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should replace a blob and record the new key", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blobs := new(MockBlobStore)
		uc := newProfileUC(userRepo, new(MockIdentity), blobs)

		userRepo.On("Get", ctx, domain.RoleEmployee, "uid-1").Return(domain.Record{
			"resume":     "https://old/resume",
			"resume_key": "resumes/uid-1/100_old.pdf",
		}, nil)
		blobs.On("Exists", ctx, "resumes/uid-1/100_old.pdf").Return(true, nil)
		blobs.On("Delete", ctx, "resumes/uid-1/100_old.pdf").Return(nil)
		blobs.On("Upload", ctx, mock.Anything, "application/pdf", []byte("new")).Return(nil)
		blobs.On("SignedURL", ctx, mock.Anything, testAssetTTL).Return("https://new/resume", nil)
		userRepo.On("UpdateFields", ctx, domain.RoleEmployee, "uid-1", mock.AnythingOfType("domain.Record")).
			Return(nil).
			Run(func(args mock.Arguments) {
				fields := args.Get(3).(domain.Record)
				assert.Equal(t, "https://new/resume", fields["resume"])
				assert.NotEmpty(t, fields["resume_key"])
			})

		merged, err := uc.UpdateProfile(ctx, domain.RoleEmployee, "uid-1", nil, map[string]*domain.FileUpload{
			"resume": {Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("new")},
		})
		assert.NoError(t, err)
		assert.Equal(t, "https://new/resume", merged.Str("resume"))
		blobs.AssertExpectations(t)
	})

	t.Run("Should tolerate an already-deleted old blob", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blobs := new(MockBlobStore)
		uc := newProfileUC(userRepo, new(MockIdentity), blobs)

		userRepo.On("Get", ctx, domain.RoleEmployee, "uid-1").Return(domain.Record{
			"resume_key": "resumes/uid-1/gone.pdf",
		}, nil)
		blobs.On("Exists", ctx, "resumes/uid-1/gone.pdf").Return(false, nil)
		blobs.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		blobs.On("SignedURL", ctx, mock.Anything, mock.Anything).Return("https://new/resume", nil)
		userRepo.On("UpdateFields", ctx, domain.RoleEmployee, "uid-1", mock.Anything).Return(nil)

		_, err := uc.UpdateProfile(ctx, domain.RoleEmployee, "uid-1", nil, map[string]*domain.FileUpload{
			"resume": {Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("new")},
		})
		assert.NoError(t, err)
		blobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Should clear the field when the upload fails after the delete", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blobs := new(MockBlobStore)
		uc := newProfileUC(userRepo, new(MockIdentity), blobs)

		userRepo.On("Get", ctx, domain.RoleEmployee, "uid-1").Return(domain.Record{
			"resume":     "https://old/resume",
			"resume_key": "resumes/uid-1/100_old.pdf",
		}, nil)
		blobs.On("Exists", ctx, "resumes/uid-1/100_old.pdf").Return(true, nil)
		blobs.On("Delete", ctx, "resumes/uid-1/100_old.pdf").Return(nil)
		blobs.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("storage down"))
		userRepo.On("UpdateFields", ctx, domain.RoleEmployee, "uid-1",
			domain.Record{"resume": nil, "resume_key": nil}).Return(nil)

		_, err := uc.UpdateProfile(ctx, domain.RoleEmployee, "uid-1", nil, map[string]*domain.FileUpload{
			"resume": {Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("new")},
		})
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.Code)
		userRepo.AssertCalled(t, "UpdateFields", ctx, domain.RoleEmployee, "uid-1",
			domain.Record{"resume": nil, "resume_key": nil})
	})
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should delete blobs, then the tree node, then the account", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		identity := new(MockIdentity)
		blobs := new(MockBlobStore)
		uc := newProfileUC(userRepo, identity, blobs)

		userRepo.On("Get", ctx, domain.RoleEmployer, "uid-1").Return(domain.Record{
			"company_logo_key": "company_logos/uid-1/logo.png",
		}, nil)
		blobs.On("Exists", ctx, "company_logos/uid-1/logo.png").Return(true, nil)
		blobs.On("Delete", ctx, "company_logos/uid-1/logo.png").Return(nil)
		userRepo.On("Delete", ctx, domain.RoleEmployer, "uid-1").Return(nil)
		identity.On("DeleteUser", ctx, "uid-1").Return(nil)

		assert.NoError(t, uc.DeleteProfile(ctx, domain.RoleEmployer, "uid-1"))
		blobs.AssertExpectations(t)
		identity.AssertExpectations(t)
	})

	t.Run("Should 404 before touching the account when the node is missing", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		identity := new(MockIdentity)
		uc := newProfileUC(userRepo, identity, new(MockBlobStore))

		userRepo.On("Get", ctx, domain.RoleEmployee, "ghost").Return(nil, domain.ErrNotFound)

		err := uc.DeleteProfile(ctx, domain.RoleEmployee, "ghost")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
		identity.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a wrong current password with 401", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		identity := new(MockIdentity)
		uc := newProfileUC(userRepo, identity, new(MockBlobStore))

		userRepo.On("Exists", ctx, domain.RoleEmployee, "uid-1").Return(true, nil)
		identity.On("GetEmail", ctx, "uid-1").Return("jane@example.com", nil)
		identity.On("SignInWithPassword", ctx, "jane@example.com", "wrong").
			Return(nil, errors.New("INVALID_PASSWORD"))

		err := uc.ChangePassword(ctx, domain.RoleEmployee, "uid-1", "wrong", "new-password")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, "Current password is incorrect", appErr.Message)
		identity.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should update after a successful re-authentication", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		identity := new(MockIdentity)
		uc := newProfileUC(userRepo, identity, new(MockBlobStore))

		userRepo.On("Exists", ctx, domain.RoleEmployer, "uid-1").Return(true, nil)
		identity.On("GetEmail", ctx, "uid-1").Return("acme@example.com", nil)
		identity.On("SignInWithPassword", ctx, "acme@example.com", "current").
			Return(&domain.SignInResult{UID: "uid-1"}, nil)
		identity.On("UpdatePassword", ctx, "uid-1", "new-password").Return(nil)

		assert.NoError(t, uc.ChangePassword(ctx, domain.RoleEmployer, "uid-1", "current", "new-password"))
		identity.AssertExpectations(t)
	})
}

func TestListProfiles(t *testing.T) {
	ctx := context.Background()

	t.Run("Should sanitize the employer listing", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newProfileUC(userRepo, new(MockIdentity), new(MockBlobStore))

		userRepo.On("List", ctx, domain.RoleEmployer).Return(map[string]domain.Record{
			"uid-b": {"name": "Beta", "industry": "Tech", "email": "hidden@example.com", "phone_number": "555"},
			"uid-a": {"name": "Alpha", "industry": "Retail", "company_logo": "https://logo"},
		}, nil)

		out, err := uc.ListProfiles(ctx, domain.RoleEmployer)
		assert.NoError(t, err)
		assert.Len(t, out, 2)
		assert.Equal(t, "uid-a", out[0]["employer_uid"], "sorted by uid")
		assert.Equal(t, "Alpha", out[0]["name"])
		assert.NotContains(t, out[1], "email", "contact details stay private")
		assert.NotContains(t, out[1], "phone_number")
	})
}

func TestGetEmployeeProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse non-employer callers", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newProfileUC(userRepo, new(MockIdentity), new(MockBlobStore))

		userRepo.On("Exists", ctx, domain.RoleEmployer, "uid-emp").Return(false, nil)

		_, err := uc.GetEmployeeProfile(ctx, "uid-emp", "uid-target")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only employers can view employee profiles")
	})

	t.Run("Should return the sanitized employee detail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newProfileUC(userRepo, new(MockIdentity), new(MockBlobStore))

		userRepo.On("Exists", ctx, domain.RoleEmployer, "uid-owner").Return(true, nil)
		userRepo.On("Get", ctx, domain.RoleEmployee, "uid-target").Return(domain.Record{
			"name":   "Jane",
			"skills": "Go",
			"resume": "https://resume",
		}, nil)

		out, err := uc.GetEmployeeProfile(ctx, "uid-owner", "uid-target")
		assert.NoError(t, err)
		assert.Equal(t, "uid-target", out["employee_uid"])
		assert.Equal(t, "Go", out["skills"])
	})
}

package usecase_test

import (
	"context"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestApply(t *testing.T) {
	ctx := context.Background()

	employee := domain.Record{
		"name":            "Jane",
		"email":           "jane@example.com",
		"phone_number":    "0800",
		"location":        "Tokyo",
		"birthday":        "1990-01-01",
		"skills":          "Go",
		"resume":          "https://resume",
		"profile_picture": "https://pic",
	}
	employer := domain.Record{
		"name":                "Acme",
		"email":               "acme@example.com",
		"industry":            "Tech",
		"contact_person_name": "Bob",
		"company_logo":        "https://logo",
	}
	job := domain.Record{
		"job_title":       "Backend Engineer",
		"job_description": "Build APIs",
		"min_salary":      400.0,
		"max_salary":      600.0,
		"location":        "Tokyo",
		"employment_type": "full-time",
		"skills_required": "Go",
	}

	t.Run("Should write the snapshot to both sides under one id", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, userRepo)

		userRepo.On("Exists", ctx, domain.RoleEmployee, "uid-jane").Return(true, nil)
		appRepo.On("ListByEmployee", ctx, "uid-jane").Return(map[string]domain.Record{}, nil)
		jobRepo.On("Get", ctx, "uid-acme", "job-1").Return(job, nil)
		userRepo.On("Get", ctx, domain.RoleEmployer, "uid-acme").Return(employer, nil)
		userRepo.On("Get", ctx, domain.RoleEmployee, "uid-jane").Return(employee, nil)
		appRepo.On("NewApplicationID", ctx, "uid-acme", "job-1").Return("app-1", nil)
		appRepo.On("CreateBoth", ctx, "uid-acme", "job-1", "uid-jane", "app-1", mock.AnythingOfType("domain.Record")).
			Return(nil).
			Run(func(args mock.Arguments) {
				snap := args.Get(5).(domain.Record)
				assert.Equal(t, "app-1", snap["application_id"])
				assert.Equal(t, "uid-jane", snap["employee_uid"])
				assert.Equal(t, "https://logo", snap["employer_logo"])
				assert.Equal(t, "Backend Engineer", snap["job_title"])
				assert.Equal(t, 400.0, snap["min_salary"])
				assert.Equal(t, 600.0, snap["max_salary"])
				assert.Equal(t, "pending", snap["application_status"])
				assert.Equal(t, true, snap["already_applied"])
			})

		snap, err := uc.Apply(ctx, "uid-jane", "uid-acme", "job-1")
		assert.NoError(t, err)
		assert.Equal(t, "app-1", snap.Str("application_id"))
		appRepo.AssertExpectations(t)
	})

	t.Run("Should 409 a duplicate application for the same job", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), userRepo)

		userRepo.On("Exists", ctx, domain.RoleEmployee, "uid-jane").Return(true, nil)
		appRepo.On("ListByEmployee", ctx, "uid-jane").Return(map[string]domain.Record{
			"app-0": {"job_id": "job-1"},
		}, nil)

		_, err := uc.Apply(ctx, "uid-jane", "uid-acme", "job-1")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
		appRepo.AssertNotCalled(t, "CreateBoth", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should forbid non-employees", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), userRepo)

		userRepo.On("Exists", ctx, domain.RoleEmployee, "uid-acme").Return(false, nil)

		_, err := uc.Apply(ctx, "uid-acme", "uid-acme", "job-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not an employee")
	})

	t.Run("Should 404 a missing job", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, userRepo)

		userRepo.On("Exists", ctx, domain.RoleEmployee, "uid-jane").Return(true, nil)
		appRepo.On("ListByEmployee", ctx, "uid-jane").Return(map[string]domain.Record{}, nil)
		jobRepo.On("Get", ctx, "uid-acme", "missing").Return(nil, domain.ErrNotFound)

		_, err := uc.Apply(ctx, "uid-jane", "uid-acme", "missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job posting not found")
	})
}

func TestMyApplications(t *testing.T) {
	ctx := context.Background()

	t.Run("Should flatten sorted by application id", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), userRepo)

		userRepo.On("Exists", ctx, domain.RoleEmployee, "uid-jane").Return(true, nil)
		appRepo.On("ListByEmployee", ctx, "uid-jane").Return(map[string]domain.Record{
			"app-b": {"job_id": "job-2"},
			"app-a": {"job_id": "job-1", "application_id": "app-a"},
		}, nil)

		apps, err := uc.MyApplications(ctx, "uid-jane")
		assert.NoError(t, err)
		assert.Len(t, apps, 2)
		assert.Equal(t, "app-a", apps[0].Str("application_id"))
		assert.Equal(t, "app-b", apps[1].Str("application_id"), "missing id filled from the key")
	})

	t.Run("Should 404 when there are none", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), userRepo)

		userRepo.On("Exists", ctx, domain.RoleEmployee, "uid-jane").Return(true, nil)
		appRepo.On("ListByEmployee", ctx, "uid-jane").Return(map[string]domain.Record{}, nil)

		_, err := uc.MyApplications(ctx, "uid-jane")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
		assert.Equal(t, "No job applications found", appErr.Message)
	})
}

func TestListForJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse a caller who is not the posting owner", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), userRepo)

		userRepo.On("Exists", ctx, domain.RoleEmployer, "uid-other").Return(true, nil)

		_, err := uc.ListForJob(ctx, "uid-other", "uid-owner", "job-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You do not own this job posting")
	})

	t.Run("Should return the applications for the owner", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), userRepo)

		userRepo.On("Exists", ctx, domain.RoleEmployer, "uid-owner").Return(true, nil)
		appRepo.On("ListForJob", ctx, "uid-owner", "job-1").Return(map[string]domain.Record{
			"app-1": {"employee_uid": "uid-jane"},
		}, nil)

		apps, err := uc.ListForJob(ctx, "uid-owner", "uid-owner", "job-1")
		assert.NoError(t, err)
		assert.Len(t, apps, 1)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should merge the status into both copies", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), userRepo)

		userRepo.On("Exists", ctx, domain.RoleEmployer, "uid-owner").Return(true, nil)
		appRepo.On("Get", ctx, "uid-owner", "job-1", "app-1").Return(domain.Record{
			"employee_uid":       "uid-jane",
			"application_status": "pending",
		}, nil)
		appRepo.On("UpdateBoth", ctx, "uid-owner", "job-1", "uid-jane", "app-1", mock.AnythingOfType("domain.Record")).
			Return(nil).
			Run(func(args mock.Arguments) {
				fields := args.Get(5).(domain.Record)
				assert.Equal(t, "accepted", fields["application_status"])
				assert.NotEmpty(t, fields["updated_at"])
			})

		merged, err := uc.UpdateStatus(ctx, "uid-owner", "uid-owner", "job-1", "app-1", "accepted")
		assert.NoError(t, err)
		assert.Equal(t, "accepted", merged.Str("application_status"))
		appRepo.AssertExpectations(t)
	})

	t.Run("Should 404 a missing application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), userRepo)

		userRepo.On("Exists", ctx, domain.RoleEmployer, "uid-owner").Return(true, nil)
		appRepo.On("Get", ctx, "uid-owner", "job-1", "missing").Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateStatus(ctx, "uid-owner", "uid-owner", "job-1", "missing", "accepted")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job application not found")
	})
}

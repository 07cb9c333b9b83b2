package usecase

import (
	"context"
	"sort"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type applicationUsecase struct {
	appRepo  domain.ApplicationRepository
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{appRepo: appRepo, jobRepo: jobRepo, userRepo: userRepo}
}

func sortedApplications(apps map[string]domain.Record) []domain.Record {
	ids := make([]string, 0, len(apps))
	for id := range apps {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.Record, 0, len(apps))
	for _, id := range ids {
		rec := apps[id]
		if rec.Str("application_id") == "" {
			rec = rec.Clone()
			rec["application_id"] = id
		}
		out = append(out, rec)
	}
	return out
}

func (u *applicationUsecase) MyApplications(ctx context.Context, employeeID string) ([]domain.Record, error) {
	isEmployee, err := u.userRepo.Exists(ctx, domain.RoleEmployee, employeeID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !isEmployee {
		return nil, apperror.Forbidden("User is not an employee or does not exist")
	}

	apps, err := u.appRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(apps) == 0 {
		return nil, apperror.NotFound("No job applications found")
	}
	return sortedApplications(apps), nil
}

// Apply snapshots the employee, employer and job into a single application
// record and writes it to both sides of the tree under one shared id.
func (u *applicationUsecase) Apply(ctx context.Context, employeeID, employerID, jobID string) (domain.Record, error) {
	isEmployee, err := u.userRepo.Exists(ctx, domain.RoleEmployee, employeeID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !isEmployee {
		return nil, apperror.Forbidden("User is not an employee or does not exist")
	}

	existing, err := u.appRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, app := range existing {
		if app.Str("job_id") == jobID {
			return nil, apperror.Conflict("You have already applied to this job posting")
		}
	}

	job, err := u.jobRepo.Get(ctx, employerID, jobID)
	if err == domain.ErrNotFound {
		return nil, apperror.NotFound("Job posting not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	employer, err := u.userRepo.Get(ctx, domain.RoleEmployer, employerID)
	if err == domain.ErrNotFound {
		return nil, apperror.NotFound("Employer not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	employee, err := u.userRepo.Get(ctx, domain.RoleEmployee, employeeID)
	if err == domain.ErrNotFound {
		return nil, apperror.NotFound("Employee not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	appID, err := u.appRepo.NewApplicationID(ctx, employerID, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	application := domain.Record{
		"application_id": appID,

		"employee_uid":             employeeID,
		"employee_name":            employee["name"],
		"employee_email":           employee["email"],
		"employee_phone_number":    employee["phone_number"],
		"employee_location":        employee["location"],
		"employee_birthday":        employee["birthday"],
		"employee_skills":          employee["skills"],
		"employee_resume":          employee["resume"],
		"employee_profile_picture": employee["profile_picture"],

		"employer_uid":                 employerID,
		"employer_name":                employer["name"],
		"employer_email":               employer["email"],
		"employer_phone_number":        employer["phone_number"],
		"employer_location":            employer["location"],
		"employer_industry":            employer["industry"],
		"employer_contact_person_name": employer["contact_person_name"],
		"employer_logo":                employer["company_logo"],

		"job_id":          jobID,
		"job_title":       job["job_title"],
		"job_description": job["job_description"],
		"location":        job["location"],
		"min_salary":      job["min_salary"],
		"max_salary":      job["max_salary"],
		"employment_type": job["employment_type"],
		"skills_required": job["skills_required"],

		"already_applied":    true,
		"application_status": domain.ApplicationStatusPending,
		"created_at":         time.Now().UTC().Format(time.RFC3339),
	}

	if err := u.appRepo.CreateBoth(ctx, employerID, jobID, employeeID, appID, application); err != nil {
		return nil, apperror.Internal(err)
	}
	return application, nil
}

func (u *applicationUsecase) ensureJobOwner(ctx context.Context, callerUID, employerID string) error {
	isEmployer, err := u.userRepo.Exists(ctx, domain.RoleEmployer, callerUID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !isEmployer {
		return apperror.Forbidden("User is not an employer or does not exist")
	}
	if callerUID != employerID {
		return apperror.Forbidden("You do not own this job posting. You are not authorized to view applications for this job posting")
	}
	return nil
}

func (u *applicationUsecase) ListForJob(ctx context.Context, callerUID, employerID, jobID string) ([]domain.Record, error) {
	if err := u.ensureJobOwner(ctx, callerUID, employerID); err != nil {
		return nil, err
	}

	apps, err := u.appRepo.ListForJob(ctx, employerID, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(apps) == 0 {
		return nil, apperror.NotFound("No job applications found")
	}
	return sortedApplications(apps), nil
}

// UpdateStatus changes the status on both copies of the application in one
// write so the employee view never lags the employer view.
func (u *applicationUsecase) UpdateStatus(ctx context.Context, callerUID, employerID, jobID, appID, status string) (domain.Record, error) {
	if err := u.ensureJobOwner(ctx, callerUID, employerID); err != nil {
		return nil, err
	}

	app, err := u.appRepo.Get(ctx, employerID, jobID, appID)
	if err == domain.ErrNotFound {
		return nil, apperror.NotFound("Job application not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	employeeID := app.Str("employee_uid")
	if employeeID == "" {
		return nil, apperror.Internal(domain.ErrNotFound)
	}

	updates := domain.Record{
		"application_status": status,
		"updated_at":         time.Now().UTC().Format(time.RFC3339),
	}
	if err := u.appRepo.UpdateBoth(ctx, employerID, jobID, employeeID, appID, updates); err != nil {
		return nil, apperror.Internal(err)
	}

	merged := app.Clone()
	for k, v := range updates {
		merged[k] = v
	}
	return merged, nil
}

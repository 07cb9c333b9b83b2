package usecase

import (
	"context"
	"sort"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
}

func NewJobUsecase(jobRepo domain.JobRepository, userRepo domain.UserRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo, userRepo: userRepo}
}

func (u *jobUsecase) ListJobs(ctx context.Context) ([]domain.JobListing, error) {
	listings, err := u.jobRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return listings, nil
}

func (u *jobUsecase) ListOwnedJobs(ctx context.Context, employerID string) ([]domain.JobListing, error) {
	isEmployer, err := u.userRepo.Exists(ctx, domain.RoleEmployer, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !isEmployer {
		return nil, apperror.Forbidden("User is not an employer or does not exist")
	}

	jobs, err := u.jobRepo.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(jobs) == 0 {
		return nil, apperror.BadRequest("You do not have any job posting yet.")
	}

	ids := make([]string, 0, len(jobs))
	for id := range jobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	listings := make([]domain.JobListing, 0, len(jobs))
	for _, id := range ids {
		listings = append(listings, domain.JobListing{EmployerID: employerID, JobID: id, Job: jobs[id]})
	}
	return listings, nil
}

func (u *jobUsecase) CreateJob(ctx context.Context, employerID string, input domain.JobPostInput) (domain.JobListing, error) {
	role, err := u.userRepo.ResolveRole(ctx, employerID)
	if err == domain.ErrNotFound {
		return domain.JobListing{}, apperror.NotFound("User not found")
	}
	if err != nil {
		return domain.JobListing{}, apperror.Internal(err)
	}
	if role != domain.RoleEmployer {
		return domain.JobListing{}, apperror.Forbidden("Only employers can create job posts")
	}

	if input.MaxSalary < input.MinSalary {
		return domain.JobListing{}, apperror.BadRequest("max_salary must be greater than or equal to min_salary")
	}

	job := domain.Record{
		"job_title":       input.Title,
		"job_description": input.Description,
		"min_salary":      input.MinSalary,
		"max_salary":      input.MaxSalary,
		"location":        input.Location,
		"employment_type": input.EmploymentType,
		"skills_required": input.SkillsRequired,
		"employer_uid":    employerID,
		"created_at":      time.Now().UTC().Format(time.RFC3339),
	}

	jobID, err := u.jobRepo.Create(ctx, employerID, job)
	if err != nil {
		return domain.JobListing{}, apperror.Internal(err)
	}
	return domain.JobListing{EmployerID: employerID, JobID: jobID, Job: job}, nil
}

// updatableJobFields is the whitelist of job attributes an employer may
// change after creation.
var updatableJobFields = map[string]bool{
	"job_title":       true,
	"job_description": true,
	"min_salary":      true,
	"max_salary":      true,
	"location":        true,
	"employment_type": true,
	"skills_required": true,
}

func (u *jobUsecase) ownedJob(ctx context.Context, employerID, jobID, action string) (domain.Record, error) {
	isEmployer, err := u.userRepo.Exists(ctx, domain.RoleEmployer, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !isEmployer {
		return nil, apperror.Forbidden("Only employers can " + action + " job posts")
	}

	job, err := u.jobRepo.Get(ctx, employerID, jobID)
	if err == domain.ErrNotFound {
		return nil, apperror.NotFound("Job post not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if job.Str("employer_uid") != "" && job.Str("employer_uid") != employerID {
		return nil, apperror.Forbidden("You can only " + action + " your own job posts")
	}
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, employerID, jobID string, fields domain.Record) (domain.Record, error) {
	job, err := u.ownedJob(ctx, employerID, jobID, "update")
	if err != nil {
		return nil, err
	}

	updates := domain.Record{}
	for k, v := range fields {
		if updatableJobFields[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		return nil, apperror.BadRequest("No valid data to update")
	}

	if err := u.jobRepo.UpdateFields(ctx, employerID, jobID, updates); err != nil {
		return nil, apperror.Internal(err)
	}

	merged := job.Clone()
	for k, v := range updates {
		merged[k] = v
	}
	return merged, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, employerID, jobID string) error {
	if _, err := u.ownedJob(ctx, employerID, jobID, "delete"); err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, employerID, jobID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

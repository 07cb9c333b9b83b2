package domain

import "context"

// JobListing is one element of the flattened global job feed.
type JobListing struct {
	EmployerID string `json:"employer_id"`
	JobID      string `json:"job_id"`
	Job        Record `json:"job_data"`
}

// JobPostInput carries the validated fields of a new job post.
type JobPostInput struct {
	Title          string
	Description    string
	MinSalary      float64
	MaxSalary      float64
	Location       string
	EmploymentType string
	SkillsRequired string
}

// JobRepository accesses job posts nested under an employer's node at
// users/employers/{employerUID}/jobs/{jobID}.
type JobRepository interface {
	// ListAll flattens every employer's jobs subtree. No jobs is not an
	// error; it yields an empty slice.
	ListAll(ctx context.Context) ([]JobListing, error)
	ListByEmployer(ctx context.Context, employerUID string) (map[string]Record, error)
	Get(ctx context.Context, employerUID, jobID string) (Record, error)
	// Create inserts with a store-generated key and returns it.
	Create(ctx context.Context, employerUID string, job Record) (string, error)
	UpdateFields(ctx context.Context, employerUID, jobID string, fields Record) error
	Delete(ctx context.Context, employerUID, jobID string) error
}

type JobUsecase interface {
	ListJobs(ctx context.Context) ([]JobListing, error)
	ListOwnedJobs(ctx context.Context, callerUID string) ([]JobListing, error)
	CreateJob(ctx context.Context, callerUID string, in JobPostInput) (JobListing, error)
	// UpdateJob applies a sparse merge of the provided fields only and
	// returns the merged record.
	UpdateJob(ctx context.Context, callerUID, jobID string, fields Record) (Record, error)
	// DeleteJob removes the subtree. Applications under the job are not
	// cascaded; see DESIGN.md.
	DeleteJob(ctx context.Context, callerUID, jobID string) error
}

package rtdb

import (
	"context"
	"fmt"
	"sort"

	"firebase.google.com/go/v4/db"

	"go-jobboard-backend/internal/domain"
)

type JobRepository struct {
	db *db.Client
}

func NewJobRepository(client *db.Client) *JobRepository {
	return &JobRepository{db: client}
}

var _ domain.JobRepository = (*JobRepository)(nil)

// ListAll reads the whole employers subtree and flattens every jobs node.
// Push keys are chronologically ordered, so sorting by job id yields a
// stable, roughly creation-ordered feed.
func (r *JobRepository) ListAll(ctx context.Context) ([]domain.JobListing, error) {
	var employers map[string]map[string]interface{}
	if err := r.db.NewRef(roleSubtreePath(domain.RoleEmployer)).Get(ctx, &employers); err != nil {
		return nil, fmt.Errorf("list employers: %w", err)
	}

	listings := make([]domain.JobListing, 0)
	for employerID, employer := range employers {
		jobs, ok := employer["jobs"].(map[string]interface{})
		if !ok {
			continue
		}
		for jobID, v := range jobs {
			job, ok := v.(map[string]interface{})
			if !ok {
				continue
			}
			listings = append(listings, domain.JobListing{
				EmployerID: employerID,
				JobID:      jobID,
				Job:        domain.Record(job),
			})
		}
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].JobID < listings[j].JobID
	})
	return listings, nil
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerUID string) (map[string]domain.Record, error) {
	var jobs map[string]domain.Record
	if err := r.db.NewRef(jobsPath(employerUID)).Get(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) Get(ctx context.Context, employerUID, jobID string) (domain.Record, error) {
	var job domain.Record
	if err := r.db.NewRef(jobPath(employerUID, jobID)).Get(ctx, &job); err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if len(job) == 0 {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

func (r *JobRepository) Create(ctx context.Context, employerUID string, job domain.Record) (string, error) {
	ref, err := r.db.NewRef(jobsPath(employerUID)).Push(ctx, job)
	if err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}
	return ref.Key, nil
}

func (r *JobRepository) UpdateFields(ctx context.Context, employerUID, jobID string, fields domain.Record) error {
	if err := r.db.NewRef(jobPath(employerUID, jobID)).Update(ctx, fields); err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, employerUID, jobID string) error {
	if err := r.db.NewRef(jobPath(employerUID, jobID)).Delete(ctx); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

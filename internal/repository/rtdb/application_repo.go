package rtdb

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
)

type ApplicationRepository struct {
	db *db.Client
}

func NewApplicationRepository(client *db.Client) *ApplicationRepository {
	return &ApplicationRepository{db: client}
}

var _ domain.ApplicationRepository = (*ApplicationRepository)(nil)

func (r *ApplicationRepository) ListByEmployee(ctx context.Context, employeeUID string) (map[string]domain.Record, error) {
	var nodes map[string]interface{}
	if err := r.db.NewRef(employeeApplicationsPath(employeeUID)).Get(ctx, &nodes); err != nil {
		return nil, fmt.Errorf("list employee applications: %w", err)
	}
	return recordChildren(nodes), nil
}

func (r *ApplicationRepository) ListForJob(ctx context.Context, employerUID, jobID string) (map[string]domain.Record, error) {
	var nodes map[string]interface{}
	if err := r.db.NewRef(jobApplicationsPath(employerUID, jobID)).Get(ctx, &nodes); err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	return recordChildren(nodes), nil
}

// recordChildren keeps only the object-shaped children of a node. A reserved
// push key whose snapshot was never written leaves a scalar placeholder
// behind; listings must not choke on it.
func recordChildren(nodes map[string]interface{}) map[string]domain.Record {
	out := make(map[string]domain.Record, len(nodes))
	for id, v := range nodes {
		child, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		out[id] = domain.Record(child)
	}
	return out
}

func (r *ApplicationRepository) Get(ctx context.Context, employerUID, jobID, applicationID string) (domain.Record, error) {
	var app domain.Record
	if err := r.db.NewRef(jobApplicationPath(employerUID, jobID, applicationID)).Get(ctx, &app); err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if len(app) == 0 {
		return nil, domain.ErrNotFound
	}
	return app, nil
}

// NewApplicationID reserves a store-generated push key under the
// employer-side applications node. The placeholder written by Push is
// replaced by the snapshot in CreateBoth.
func (r *ApplicationRepository) NewApplicationID(ctx context.Context, employerUID, jobID string) (string, error) {
	ref, err := r.db.NewRef(jobApplicationsPath(employerUID, jobID)).Push(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("reserve application id: %w", err)
	}
	return ref.Key, nil
}

// CreateBoth writes the snapshot at both locations in a single root-level
// multi-path update, which the store applies atomically.
func (r *ApplicationRepository) CreateBoth(ctx context.Context, employerUID, jobID, employeeUID, applicationID string, snapshot domain.Record) error {
	updates := map[string]interface{}{
		jobApplicationPath(employerUID, jobID, applicationID): map[string]interface{}(snapshot),
		employeeApplicationPath(employeeUID, applicationID):   map[string]interface{}(snapshot),
	}
	if err := r.db.NewRef("").Update(ctx, updates); err != nil {
		// Best effort: drop the placeholder left by the reserved push key so
		// the applications node holds object children only.
		if derr := r.db.NewRef(jobApplicationPath(employerUID, jobID, applicationID)).Delete(ctx); derr != nil {
			logger.Log.Warn("could not remove reserved application placeholder",
				"employer_uid", employerUID, "job_id", jobID, "application_id", applicationID, "error", derr)
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// UpdateBoth merges the given fields into both copies. Each field becomes a
// deep path in one multi-path update so the merge is atomic and leaves the
// rest of both snapshots untouched.
func (r *ApplicationRepository) UpdateBoth(ctx context.Context, employerUID, jobID, employeeUID, applicationID string, fields domain.Record) error {
	updates := make(map[string]interface{}, 2*len(fields))
	for field, value := range fields {
		updates[jobApplicationPath(employerUID, jobID, applicationID)+"/"+field] = value
		updates[employeeApplicationPath(employeeUID, applicationID)+"/"+field] = value
	}
	if err := r.db.NewRef("").Update(ctx, updates); err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return nil
}

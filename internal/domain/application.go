package domain

import "context"

// Initial status of a new application. Status is free-form afterwards;
// employers set it via the status-update endpoint.
const ApplicationStatusPending = "pending"

// ApplicationRepository manages the dual-written application snapshot. The
// employer-side copy lives at
// users/employers/{employerUID}/jobs/{jobID}/applications/{appID} and the
// employee-side copy at users/employees/{employeeUID}/job_applications/{appID}.
// Both sides are keyed by the same application id.
type ApplicationRepository interface {
	ListByEmployee(ctx context.Context, employeeUID string) (map[string]Record, error)
	ListForJob(ctx context.Context, employerUID, jobID string) (map[string]Record, error)
	Get(ctx context.Context, employerUID, jobID, applicationID string) (Record, error)
	// NewApplicationID reserves a store-generated push key under the
	// employer-side applications node.
	NewApplicationID(ctx context.Context, employerUID, jobID string) (string, error)
	// CreateBoth writes the snapshot to both locations in one multi-path
	// update, so the two copies cannot diverge on insert.
	CreateBoth(ctx context.Context, employerUID, jobID, employeeUID, applicationID string, snapshot Record) error
	// UpdateBoth merges the given fields into both copies atomically.
	UpdateBoth(ctx context.Context, employerUID, jobID, employeeUID, applicationID string, fields Record) error
}

type ApplicationUsecase interface {
	// MyApplications returns the employee's applications, flattened.
	MyApplications(ctx context.Context, employeeUID string) ([]Record, error)
	// Apply creates the denormalized snapshot for (employee, job). At most
	// one application may exist per pair.
	Apply(ctx context.Context, employeeUID, employerID, jobID string) (Record, error)
	// ListForJob requires the caller to be the owning employer.
	ListForJob(ctx context.Context, callerUID, employerID, jobID string) ([]Record, error)
	// UpdateStatus merges a new application_status into both copies and
	// returns the merged record.
	UpdateStatus(ctx context.Context, callerUID, employerID, jobID, applicationID, status string) (Record, error)
}

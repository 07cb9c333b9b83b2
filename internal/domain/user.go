package domain

import (
	"context"
	"errors"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Role is the explicit role tag persisted in the user_type field. The
// users/employees and users/employers subtrees are a derived index of it; a
// uid lives under exactly one of them.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleEmployer Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleEmployer
}

// Subtree returns the child of "users" holding this role's profiles.
func (r Role) Subtree() string {
	return string(r) + "s"
}

// BlobFields maps the role's profile blob fields to their storage prefix.
// The profile stores a signed URL under the field name and the canonical
// storage key under "<field>_key".
func (r Role) BlobFields() map[string]string {
	switch r {
	case RoleEmployee:
		return map[string]string{
			"resume":          "resumes",
			"profile_picture": "profile_pictures",
		}
	case RoleEmployer:
		return map[string]string{
			"company_logo": "company_logos",
		}
	}
	return nil
}

// UserRepository is role-scoped access to profile nodes in the tree store.
type UserRepository interface {
	Get(ctx context.Context, role Role, uid string) (Record, error)
	Exists(ctx context.Context, role Role, uid string) (bool, error)
	// ResolveRole checks the employee subtree first, then the employer one.
	// Returns ErrNotFound when the uid is under neither.
	ResolveRole(ctx context.Context, uid string) (Role, error)
	Create(ctx context.Context, role Role, uid string, profile Record) error
	// UpdateFields performs a sparse merge: only the given fields change,
	// a nil value removes the field.
	UpdateFields(ctx context.Context, role Role, uid string, fields Record) error
	Delete(ctx context.Context, role Role, uid string) error
	List(ctx context.Context, role Role) (map[string]Record, error)
}

// SignUpInput carries the validated registration form.
type SignUpInput struct {
	Email       string
	Password    string
	Role        Role
	Name        string
	PhoneNumber string
	Location    string
	// employee-only
	Birthday string
	Skills   string
	// employer-only
	Industry          string
	ContactPersonName string
	// optional role-scoped uploads, keyed by profile field name
	Files map[string]*FileUpload
}

type SignUpResult struct {
	UID  string `json:"uid"`
	Role Role   `json:"user_type"`
}

type SignInOutput struct {
	UID     string `json:"uid"`
	IDToken string `json:"id_token"`
	Role    Role   `json:"user_type"`
}

type AuthUsecase interface {
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*SignInOutput, error)
	VerifyToken(ctx context.Context, idToken string) (string, error)
	Logout(ctx context.Context, uid string) error
	ForgotPassword(ctx context.Context, email string) error
}

// ProfileUsecase is role-scoped CRUD over a user's profile, coordinating the
// blob store with the tree store and the identity provider.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, role Role, uid string) (Record, error)
	// UpdateProfile merges the given scalar fields over the stored record and
	// replaces any blob fields for which a new file is supplied.
	UpdateProfile(ctx context.Context, role Role, uid string, fields Record, files map[string]*FileUpload) (Record, error)
	// DeleteProfile removes blobs, then the tree node, then the identity
	// account, in that order.
	DeleteProfile(ctx context.Context, role Role, uid string) error
	ChangePassword(ctx context.Context, role Role, uid, currentPassword, newPassword string) error
	// ListProfiles returns a sanitized public listing of the given role.
	ListProfiles(ctx context.Context, role Role) ([]Record, error)
	// GetEmployeeProfile is the employer-facing view of one employee.
	GetEmployeeProfile(ctx context.Context, callerUID, employeeID string) (Record, error)
	// SignedDownloadURL mints a short-lived URL for a stored object.
	SignedDownloadURL(ctx context.Context, key string) (string, error)
}

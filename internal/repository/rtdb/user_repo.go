package rtdb

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"

	"go-jobboard-backend/internal/domain"
)

type UserRepository struct {
	db *db.Client
}

func NewUserRepository(client *db.Client) *UserRepository {
	return &UserRepository{db: client}
}

var _ domain.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Get(ctx context.Context, role domain.Role, uid string) (domain.Record, error) {
	var rec domain.Record
	if err := r.db.NewRef(profilePath(role, uid)).Get(ctx, &rec); err != nil {
		return nil, fmt.Errorf("get %s profile: %w", role, err)
	}
	if len(rec) == 0 {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (r *UserRepository) Exists(ctx context.Context, role domain.Role, uid string) (bool, error) {
	rec, err := r.Get(ctx, role, uid)
	if err == domain.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(rec) > 0, nil
}

// ResolveRole checks the employee subtree first, then the employer one. The
// uid-uniqueness invariant guarantees at most one can match.
func (r *UserRepository) ResolveRole(ctx context.Context, uid string) (domain.Role, error) {
	for _, role := range []domain.Role{domain.RoleEmployee, domain.RoleEmployer} {
		ok, err := r.Exists(ctx, role, uid)
		if err != nil {
			return "", err
		}
		if ok {
			return role, nil
		}
	}
	return "", domain.ErrNotFound
}

func (r *UserRepository) Create(ctx context.Context, role domain.Role, uid string, profile domain.Record) error {
	if err := r.db.NewRef(profilePath(role, uid)).Set(ctx, profile); err != nil {
		return fmt.Errorf("create %s profile: %w", role, err)
	}
	return nil
}

// UpdateFields merges only the given fields over the stored node; sibling
// fields are untouched, a nil value removes the field.
func (r *UserRepository) UpdateFields(ctx context.Context, role domain.Role, uid string, fields domain.Record) error {
	if err := r.db.NewRef(profilePath(role, uid)).Update(ctx, fields); err != nil {
		return fmt.Errorf("update %s profile: %w", role, err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, role domain.Role, uid string) error {
	if err := r.db.NewRef(profilePath(role, uid)).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s profile: %w", role, err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, role domain.Role) (map[string]domain.Record, error) {
	var nodes map[string]domain.Record
	if err := r.db.NewRef(roleSubtreePath(role)).Get(ctx, &nodes); err != nil {
		return nil, fmt.Errorf("list %s profiles: %w", role, err)
	}
	return nodes, nil
}

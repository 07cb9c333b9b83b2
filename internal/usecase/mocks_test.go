package usecase_test

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Get(ctx context.Context, role domain.Role, uid string) (domain.Record, error) {
	args := m.Called(ctx, role, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Record), args.Error(1)
}

func (m *MockUserRepo) Exists(ctx context.Context, role domain.Role, uid string) (bool, error) {
	args := m.Called(ctx, role, uid)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) ResolveRole(ctx context.Context, uid string) (domain.Role, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(domain.Role), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, role domain.Role, uid string, profile domain.Record) error {
	return m.Called(ctx, role, uid, profile).Error(0)
}

func (m *MockUserRepo) UpdateFields(ctx context.Context, role domain.Role, uid string, fields domain.Record) error {
	return m.Called(ctx, role, uid, fields).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, role domain.Role, uid string) error {
	return m.Called(ctx, role, uid).Error(0)
}

func (m *MockUserRepo) List(ctx context.Context, role domain.Role) (map[string]domain.Record, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Record), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) ListAll(ctx context.Context) ([]domain.JobListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobListing), args.Error(1)
}

func (m *MockJobRepo) ListByEmployer(ctx context.Context, employerUID string) (map[string]domain.Record, error) {
	args := m.Called(ctx, employerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Record), args.Error(1)
}

func (m *MockJobRepo) Get(ctx context.Context, employerUID, jobID string) (domain.Record, error) {
	args := m.Called(ctx, employerUID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Record), args.Error(1)
}

func (m *MockJobRepo) Create(ctx context.Context, employerUID string, job domain.Record) (string, error) {
	args := m.Called(ctx, employerUID, job)
	return args.String(0), args.Error(1)
}

func (m *MockJobRepo) UpdateFields(ctx context.Context, employerUID, jobID string, fields domain.Record) error {
	return m.Called(ctx, employerUID, jobID, fields).Error(0)
}

func (m *MockJobRepo) Delete(ctx context.Context, employerUID, jobID string) error {
	return m.Called(ctx, employerUID, jobID).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) ListByEmployee(ctx context.Context, employeeUID string) (map[string]domain.Record, error) {
	args := m.Called(ctx, employeeUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Record), args.Error(1)
}

func (m *MockApplicationRepo) ListForJob(ctx context.Context, employerUID, jobID string) (map[string]domain.Record, error) {
	args := m.Called(ctx, employerUID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Record), args.Error(1)
}

func (m *MockApplicationRepo) Get(ctx context.Context, employerUID, jobID, applicationID string) (domain.Record, error) {
	args := m.Called(ctx, employerUID, jobID, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Record), args.Error(1)
}

func (m *MockApplicationRepo) NewApplicationID(ctx context.Context, employerUID, jobID string) (string, error) {
	args := m.Called(ctx, employerUID, jobID)
	return args.String(0), args.Error(1)
}

func (m *MockApplicationRepo) CreateBoth(ctx context.Context, employerUID, jobID, employeeUID, applicationID string, snapshot domain.Record) error {
	return m.Called(ctx, employerUID, jobID, employeeUID, applicationID, snapshot).Error(0)
}

func (m *MockApplicationRepo) UpdateBoth(ctx context.Context, employerUID, jobID, employeeUID, applicationID string, fields domain.Record) error {
	return m.Called(ctx, employerUID, jobID, employeeUID, applicationID, fields).Error(0)
}

// Mock Collaborators

type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) CreateUser(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockIdentity) SignInWithPassword(ctx context.Context, email, password string) (*domain.SignInResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignInResult), args.Error(1)
}

func (m *MockIdentity) VerifyIDToken(ctx context.Context, idToken string) (*domain.AuthClaims, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthClaims), args.Error(1)
}

func (m *MockIdentity) UpdateEmail(ctx context.Context, uid, email string) error {
	return m.Called(ctx, uid, email).Error(0)
}

func (m *MockIdentity) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	return m.Called(ctx, uid, newPassword).Error(0)
}

func (m *MockIdentity) GetEmail(ctx context.Context, uid string) (string, error) {
	args := m.Called(ctx, uid)
	return args.String(0), args.Error(1)
}

func (m *MockIdentity) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *MockIdentity) DeleteUser(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *MockIdentity) SendPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, key, contentType string, data []byte) error {
	return m.Called(ctx, key, contentType, data).Error(0)
}

func (m *MockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockBlobStore) SignedURL(ctx context.Context, key string, validity time.Duration) (string, error) {
	args := m.Called(ctx, key, validity)
	return args.String(0), args.Error(1)
}

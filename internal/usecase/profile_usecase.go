package usecase

import (
	"context"
	"sort"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/storage"
)

// profileUsecase is the role-scoped profile service. One implementation
// serves both roles; the role argument selects the subtree and the blob
// field set.
type profileUsecase struct {
	userRepo    domain.UserRepository
	identity    domain.IdentityProvider
	blobs       domain.BlobStore
	bucket      string
	assetTTL    time.Duration
	downloadTTL time.Duration
}

func NewProfileUsecase(
	userRepo domain.UserRepository,
	identity domain.IdentityProvider,
	blobs domain.BlobStore,
	bucket string,
	assetTTL, downloadTTL time.Duration,
) domain.ProfileUsecase {
	return &profileUsecase{
		userRepo:    userRepo,
		identity:    identity,
		blobs:       blobs,
		bucket:      bucket,
		assetTTL:    assetTTL,
		downloadTTL: downloadTTL,
	}
}

func roleLabel(role domain.Role) string {
	if role == domain.RoleEmployer {
		return "Employer"
	}
	return "Employee"
}

func (u *profileUsecase) GetProfile(ctx context.Context, role domain.Role, uid string) (domain.Record, error) {
	profile, err := u.userRepo.Get(ctx, role, uid)
	if err == domain.ErrNotFound {
		return nil, apperror.NotFound(roleLabel(role) + " not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// updatableProfileFields is the set of scalar fields a client may set
// through a profile update, per role. Everything else is dropped: blob
// fields and their keys belong to the blob pipeline, user_type and the
// uid fields are immutable, and the jobs and job_applications children
// are whole subtrees that a field merge must never overwrite.
func updatableProfileFields(role domain.Role) map[string]bool {
	out := map[string]bool{
		"name":         true,
		"email":        true,
		"phone_number": true,
		"location":     true,
	}
	if role == domain.RoleEmployer {
		out["industry"] = true
		out["contact_person_name"] = true
	} else {
		out["birthday"] = true
		out["skills"] = true
	}
	return out
}

// UpdateProfile applies partial-update semantics: only fields present in
// the request change, everything else keeps its stored value. An email
// change is propagated to the identity provider before the tree is touched.
func (u *profileUsecase) UpdateProfile(ctx context.Context, role domain.Role, uid string, fields domain.Record, files map[string]*domain.FileUpload) (domain.Record, error) {
	current, err := u.userRepo.Get(ctx, role, uid)
	if err == domain.ErrNotFound {
		return nil, apperror.NotFound(roleLabel(role) + " not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if fields.Has("email") && fields.Str("email") != current.Str("email") {
		if err := u.identity.UpdateEmail(ctx, uid, fields.Str("email")); err != nil {
			return nil, apperror.AuthSync("Could not update email with the identity provider", err)
		}
	}

	updates := domain.Record{}

	for field, prefix := range role.BlobFields() {
		file := files[field]
		if file == nil {
			continue
		}
		newURL, newKey, err := u.replaceBlob(ctx, role, uid, current, field, prefix, file)
		if err != nil {
			return nil, err
		}
		updates[field] = newURL
		updates[field+"_key"] = newKey
	}

	allowed := updatableProfileFields(role)
	for k, v := range fields {
		if !allowed[k] {
			continue
		}
		updates[k] = v
	}

	if len(updates) > 0 {
		if err := u.userRepo.UpdateFields(ctx, role, uid, updates); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	merged := current.Clone()
	for k, v := range updates {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return merged, nil
}

// replaceBlob deletes the prior blob (absence tolerated), uploads the new
// one under a fresh timestamped key and mints a signed URL. The stored URL
// eventually expires; reads re-mint through the download route using the
// recorded key. If
// the upload or signing fails after the old blob is gone, the field is
// cleared explicitly so the profile never points at a dead URL.
func (u *profileUsecase) replaceBlob(ctx context.Context, role domain.Role, uid string, current domain.Record, field, prefix string, file *domain.FileUpload) (string, string, error) {
	if oldKey := u.storedKey(current, field); oldKey != "" {
		exists, err := u.blobs.Exists(ctx, oldKey)
		if err != nil {
			return "", "", apperror.Storage("Could not check prior "+field, err)
		}
		if exists {
			if err := u.blobs.Delete(ctx, oldKey); err != nil {
				return "", "", apperror.Storage("Could not delete prior "+field, err)
			}
		}
	}

	newKey := storage.BuildKey(prefix, uid, file.Filename, time.Now())
	if err := u.blobs.Upload(ctx, newKey, file.ContentType, file.Data); err != nil {
		u.clearBlobField(ctx, role, uid, field)
		return "", "", apperror.Storage(field+" upload failed", err)
	}

	url, err := u.blobs.SignedURL(ctx, newKey, u.assetTTL)
	if err != nil {
		u.clearBlobField(ctx, role, uid, field)
		return "", "", apperror.Storage("Could not sign URL for "+field, err)
	}
	return url, newKey, nil
}

// storedKey returns the canonical storage key of a blob field, falling back
// to parsing the signed URL for legacy records that predate the key field.
func (u *profileUsecase) storedKey(profile domain.Record, field string) string {
	if key := profile.Str(field + "_key"); key != "" {
		return key
	}
	url := profile.Str(field)
	if url == "" {
		return ""
	}
	key, err := storage.KeyFromURL(url, u.bucket)
	if err != nil {
		logger.Log.Warn("could not recover storage key from legacy URL", "field", field, "error", err)
		return ""
	}
	return key
}

func (u *profileUsecase) clearBlobField(ctx context.Context, role domain.Role, uid, field string) {
	err := u.userRepo.UpdateFields(ctx, role, uid, domain.Record{field: nil, field + "_key": nil})
	if err != nil {
		logger.Log.Error("could not clear dangling blob reference", "field", field, "uid", uid, "error", err)
	}
}

// DeleteProfile removes every known blob, then the tree node, then the
// identity account, in that order. A missing blob is fine; a missing tree
// node fails before the identity account is touched.
func (u *profileUsecase) DeleteProfile(ctx context.Context, role domain.Role, uid string) error {
	profile, err := u.userRepo.Get(ctx, role, uid)
	if err == domain.ErrNotFound {
		return apperror.NotFound(roleLabel(role) + " profile not found")
	}
	if err != nil {
		return apperror.Internal(err)
	}

	for field := range role.BlobFields() {
		key := u.storedKey(profile, field)
		if key == "" {
			continue
		}
		exists, err := u.blobs.Exists(ctx, key)
		if err != nil {
			return apperror.Storage("Could not check "+field, err)
		}
		if !exists {
			continue
		}
		if err := u.blobs.Delete(ctx, key); err != nil {
			return apperror.Storage("Could not delete "+field, err)
		}
	}

	if err := u.userRepo.Delete(ctx, role, uid); err != nil {
		return apperror.Internal(err)
	}

	if err := u.identity.DeleteUser(ctx, uid); err != nil {
		return apperror.New(400, "Could not delete identity account: "+err.Error(), err)
	}
	return nil
}

// ChangePassword re-authenticates with the current password before setting
// the new one. A failed re-authentication is Unauthorized, distinct from
// any other failure.
func (u *profileUsecase) ChangePassword(ctx context.Context, role domain.Role, uid, currentPassword, newPassword string) error {
	ok, err := u.userRepo.Exists(ctx, role, uid)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.Forbidden("User is not an " + string(role) + " or does not exist")
	}

	email, err := u.identity.GetEmail(ctx, uid)
	if err != nil {
		return apperror.NotFound("Authentication account not found")
	}

	if _, err := u.identity.SignInWithPassword(ctx, email, currentPassword); err != nil {
		return apperror.Unauthorized("Current password is incorrect")
	}

	if err := u.identity.UpdatePassword(ctx, uid, newPassword); err != nil {
		return apperror.AuthSync("Could not update password", err)
	}
	return nil
}

// ListProfiles returns the sanitized public listing of a role subtree,
// ordered by uid.
func (u *profileUsecase) ListProfiles(ctx context.Context, role domain.Role) ([]domain.Record, error) {
	profiles, err := u.userRepo.List(ctx, role)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	uids := make([]string, 0, len(profiles))
	for uid := range profiles {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	out := make([]domain.Record, 0, len(profiles))
	for _, uid := range uids {
		out = append(out, sanitizeListing(role, uid, profiles[uid]))
	}
	return out, nil
}

func sanitizeListing(role domain.Role, uid string, p domain.Record) domain.Record {
	if role == domain.RoleEmployer {
		return domain.Record{
			"employer_uid": uid,
			"name":         p["name"],
			"industry":     p["industry"],
			"location":     p["location"],
			"company_logo": p["company_logo"],
		}
	}
	return domain.Record{
		"employee_uid": uid,
		"name":         p["name"],
		"email":        p["email"],
		"location":     p["location"],
		"skills":       p["skills"],
	}
}

// GetEmployeeProfile is the employer-facing view of a single employee.
func (u *profileUsecase) GetEmployeeProfile(ctx context.Context, callerUID, employeeID string) (domain.Record, error) {
	isEmployer, err := u.userRepo.Exists(ctx, domain.RoleEmployer, callerUID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !isEmployer {
		return nil, apperror.Forbidden("Only employers can view employee profiles")
	}

	employee, err := u.userRepo.Get(ctx, domain.RoleEmployee, employeeID)
	if err == domain.ErrNotFound {
		return nil, apperror.NotFound("Employee not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return domain.Record{
		"employee_uid":    employeeID,
		"name":            employee["name"],
		"email":           employee["email"],
		"location":        employee["location"],
		"birthday":        employee["birthday"],
		"phone_number":    employee["phone_number"],
		"skills":          employee["skills"],
		"resume":          employee["resume"],
		"profile_picture": employee["profile_picture"],
	}, nil
}

func (u *profileUsecase) SignedDownloadURL(ctx context.Context, key string) (string, error) {
	url, err := u.blobs.SignedURL(ctx, key, u.downloadTTL)
	if err != nil {
		return "", apperror.Storage("Could not sign download URL", err)
	}
	return url, nil
}

package usecase

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/storage"
)

type authUsecase struct {
	userRepo domain.UserRepository
	identity domain.IdentityProvider
	blobs    domain.BlobStore
	assetTTL time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, identity domain.IdentityProvider, blobs domain.BlobStore, assetTTL time.Duration) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		identity: identity,
		blobs:    blobs,
		assetTTL: assetTTL,
	}
}

// SignUp creates the identity account first, then uploads any profile
// blobs, then writes the profile node under the role subtree. The uid ends
// up under exactly one role subtree. If anything after account creation
// fails, the account is best-effort deleted so a retry can reuse the email.
func (u *authUsecase) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.SignUpResult, error) {
	if !in.Role.Valid() {
		return nil, apperror.BadRequest("user_type must be employee or employer")
	}

	uid, err := u.identity.CreateUser(ctx, in.Email, in.Password)
	if err != nil {
		return nil, apperror.New(400, "Could not create account: "+err.Error(), err)
	}

	profile := u.baseProfile(uid, in)

	for field, prefix := range in.Role.BlobFields() {
		file := in.Files[field]
		if file == nil {
			continue
		}
		key := storage.BuildKey(prefix, uid, file.Filename, time.Now())
		if err := u.blobs.Upload(ctx, key, file.ContentType, file.Data); err != nil {
			u.rollbackAccount(ctx, uid)
			return nil, apperror.Storage("Could not upload "+field, err)
		}
		url, err := u.blobs.SignedURL(ctx, key, u.assetTTL)
		if err != nil {
			u.rollbackAccount(ctx, uid)
			return nil, apperror.Storage("Could not sign URL for "+field, err)
		}
		profile[field] = url
		profile[field+"_key"] = key
	}

	if err := u.userRepo.Create(ctx, in.Role, uid, profile); err != nil {
		u.rollbackAccount(ctx, uid)
		return nil, apperror.Internal(err)
	}

	return &domain.SignUpResult{UID: uid, Role: in.Role}, nil
}

func (u *authUsecase) baseProfile(uid string, in domain.SignUpInput) domain.Record {
	profile := domain.Record{
		"user_type":    string(in.Role),
		"name":         in.Name,
		"email":        in.Email,
		"phone_number": in.PhoneNumber,
		"location":     in.Location,
	}
	switch in.Role {
	case domain.RoleEmployee:
		profile["employee_uid"] = uid
		profile["birthday"] = in.Birthday
		profile["skills"] = in.Skills
	case domain.RoleEmployer:
		profile["employer_uid"] = uid
		profile["industry"] = in.Industry
		profile["contact_person_name"] = in.ContactPersonName
	}
	return profile
}

func (u *authUsecase) rollbackAccount(ctx context.Context, uid string) {
	if err := u.identity.DeleteUser(ctx, uid); err != nil {
		logger.Log.Error("sign-up rollback failed, orphaned identity account", "uid", uid, "error", err)
	}
}

func (u *authUsecase) SignIn(ctx context.Context, email, password string) (*domain.SignInOutput, error) {
	result, err := u.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, apperror.BadRequest("Authentication failed: " + err.Error())
	}

	role, err := u.userRepo.ResolveRole(ctx, result.UID)
	if err == domain.ErrNotFound {
		return nil, apperror.BadRequest("User not found.")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.SignInOutput{
		UID:     result.UID,
		IDToken: result.IDToken,
		Role:    role,
	}, nil
}

func (u *authUsecase) VerifyToken(ctx context.Context, idToken string) (string, error) {
	claims, err := u.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", apperror.BadRequest("Invalid token: " + err.Error())
	}
	return claims.UID, nil
}

func (u *authUsecase) Logout(ctx context.Context, uid string) error {
	if err := u.identity.RevokeRefreshTokens(ctx, uid); err != nil {
		return apperror.New(400, "Logout failed: "+err.Error(), err)
	}
	return nil
}

func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	if err := u.identity.SendPasswordReset(ctx, email); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

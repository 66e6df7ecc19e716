package usecase

import (
	"context"
	"time"

	"dailyrewards/internal/domain/entity"
	"dailyrewards/internal/domain/repository"
	"dailyrewards/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	clock    Clock
}

func NewUserUseCase(userRepo repository.UserRepository, clock Clock) *UserUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &UserUseCase{
		userRepo: userRepo,
		clock:    clock,
	}
}

type SyncProfileInput struct {
	Email       string
	DisplayName string
	AvatarURL   string
}

// SyncProfile creates the user's profile on first sight and refreshes the
// fields carried by the identity token afterwards. Empty input fields never
// overwrite stored values.
func (uc *UserUseCase) SyncProfile(ctx context.Context, userID string, input SyncProfileInput) (*entity.User, error) {
	now := uc.clock()

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !isNotFound(err) {
			return nil, errors.Internal("Failed to get user profile", err)
		}
		user = &entity.User{ID: userID, CreatedAt: now}
	}

	changed := user.UpdatedAt.IsZero()
	if input.Email != "" && input.Email != user.Email {
		user.Email = input.Email
		changed = true
	}
	if input.DisplayName != "" && input.DisplayName != user.DisplayName {
		user.DisplayName = input.DisplayName
		changed = true
	}
	if input.AvatarURL != "" && input.AvatarURL != user.AvatarURL {
		user.AvatarURL = input.AvatarURL
		changed = true
	}
	if !changed {
		return user, nil
	}

	user.UpdatedAt = now
	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return nil, errors.Internal("Failed to save user profile", err)
	}
	return user, nil
}

func (uc *UserUseCase) GetUserProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user profile", err)
	}
	return user, nil
}

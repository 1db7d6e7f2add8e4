package usecase

import (
	"context"
	"errors"

	"github.com/oddsline/backend/internal/domain"
)

type UserUsecase struct {
	users domain.UserRepository
}

func NewUserUsecase(users domain.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) RegisterOrGet(ctx context.Context, wallet, displayName string) (*domain.User, error) {
	user, err := u.users.GetByWallet(ctx, wallet)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	newUser := &domain.User{
		WalletAddress: wallet,
		DisplayName:   displayName,
	}
	if err := u.users.Create(ctx, newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

func (u *UserUsecase) GetProfile(ctx context.Context, wallet string) (*domain.User, error) {
	user, err := u.users.GetByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}
	return user, nil
}

// LinkContact attaches a notification chat id to the profile. The contact
// stays unverified until ConfirmContact runs; the checker skips delivery
// for unverified contacts.
func (u *UserUsecase) LinkContact(ctx context.Context, wallet, chatID string) (*domain.User, error) {
	user, err := u.GetProfile(ctx, wallet)
	if err != nil {
		return nil, err
	}
	user.NotifyChatID = chatID
	user.NotifyVerified = false
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *UserUsecase) ConfirmContact(ctx context.Context, wallet string) (*domain.User, error) {
	user, err := u.GetProfile(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if user.NotifyChatID == "" {
		return nil, errors.New("no contact linked")
	}
	user.NotifyVerified = true
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

package service

import (
	"context"
	"errors"

	"chat-billing/internal/errs"
	"chat-billing/internal/model"
	"chat-billing/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountService interface {
	CreateAccount(ctx context.Context, name string) (string, error)
	GetAccount(ctx context.Context, id string) (*model.Account, error)
}

type accountServiceImpl struct {
	accountRepo repository.AccountRepository
}

func NewAccountService(accountRepo repository.AccountRepository) AccountService {
	return &accountServiceImpl{
		accountRepo: accountRepo,
	}
}

func (s *accountServiceImpl) CreateAccount(ctx context.Context, name string) (string, error) {
	account := &model.Account{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return "", errs.Internal("persist account", err)
	}

	return account.ID, nil
}

func (s *accountServiceImpl) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	account, err := s.accountRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("account not found")
		}
		return nil, errs.Internal("load account", err)
	}

	return account, nil
}

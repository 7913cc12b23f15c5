package service

import (
	"context"
	"errors"
	"event_ticketing/constants"
	"event_ticketing/helper"
	"event_ticketing/model"
	"strings"

	"gorm.io/gorm"
)

type AccountService struct {
	accounts AccountStore
	tokens   *helper.TokenIssuer
}

func NewAccountService(accounts AccountStore, tokens *helper.TokenIssuer) *AccountService {
	return &AccountService{accounts: accounts, tokens: tokens}
}

func (s *AccountService) Register(ctx context.Context, input model.RegisterInput) (*model.AccountResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, Conflict(constants.EMAIL_EXISTS, nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}

	role := input.Role
	if role == "" {
		role = constants.ROLE_ATTENDEE
	}

	account := &model.Account{
		Name:     input.Name,
		Email:    email,
		Password: hash,
		Role:     role,
		Active:   true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict(constants.EMAIL_EXISTS, err)
		}
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}

	return s.withToken(account)
}

func (s *AccountService) Login(ctx context.Context, input model.LoginInput) (*model.AccountResponse, error) {
	account, err := s.accounts.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Unauthorized(constants.INVALID_CREDENTIALS, nil)
		}
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}

	if !helper.CheckPasswordHash(input.Password, account.Password) {
		return nil, Unauthorized(constants.INVALID_CREDENTIALS, nil)
	}
	if !account.Active {
		return nil, Forbidden(constants.ACCOUNT_NOT_ACTIVE, nil)
	}

	return s.withToken(account)
}

func (s *AccountService) Me(ctx context.Context, accountID string) (*model.AccountResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, storeError(err, constants.ACCOUNT_NOT_FOUND)
	}
	return toAccountResponse(account), nil
}

func (s *AccountService) withToken(account *model.Account) (*model.AccountResponse, error) {
	token, err := s.tokens.GenerateAccessToken(model.TokenClaim{
		AccountId: account.ID,
		Email:     account.Email,
		Role:      account.Role,
	})
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	resp := toAccountResponse(account)
	resp.Token = token
	return resp, nil
}

func toAccountResponse(account *model.Account) *model.AccountResponse {
	return &model.AccountResponse{
		ID:     account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Role:   account.Role,
		Active: account.Active,
	}
}

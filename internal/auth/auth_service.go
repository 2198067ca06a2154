package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "github.com/nimtechnologiez-coder/attendance-backend/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	GetMe(ctx context.Context, userID string) (*UserInfo, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	account, err := s.repo.GetAccountByIdentifier(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrEmployeeNotFound
		}
		s.logger.Error("login account lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.User.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("login rejected", zap.String("identifier", req.EmployeeID))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(account, time.Hour*24)
	if err != nil {
		s.logger.Error("login token generation failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("user_id", account.User.ID.String()),
		zap.String("employee_code", account.EmployeeCode),
	)

	return LoginResponse{
		Token: token,
		User:  mapUserInfo(account),
	}, nil
}

func (s *service) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return autherrors.ErrPasswordMismatch
	}

	account, err := s.repo.GetAccountByIdentifier(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrEmployeeNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.User.Password), []byte(req.CurrentPassword)); err != nil {
		return autherrors.ErrCurrentPasswordIncorrect
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, account.User.ID, string(hashed)); err != nil {
		s.logger.Error("change password persist failed",
			zap.String("user_id", account.User.ID.String()),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("change password success", zap.String("user_id", account.User.ID.String()))
	return nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*UserInfo, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	account, err := s.repo.GetAccountByUserID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	info := mapUserInfo(account)
	return &info, nil
}

func (s *service) generateToken(account *Account, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     account.User.ID.String(),
		"employee_id": account.EmployeeID.String(),
		"is_admin":    account.User.IsAdmin,
		"exp":         time.Now().Add(ttl).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapUserInfo(account *Account) UserInfo {
	return UserInfo{
		ID:         account.User.ID.String(),
		Email:      account.User.Email,
		Name:       account.User.Name,
		EmployeeID: account.EmployeeCode,
		IsAdmin:    account.User.IsAdmin,
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/repository"
	apperrors "github.com/SNS-EUGENE/s-live-dashboard/pkg/errors"
	"github.com/SNS-EUGENE/s-live-dashboard/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("이메일 또는 비밀번호가 올바르지 않습니다")
	ErrUserNotFound       = errors.New("사용자를 찾을 수 없습니다")
	ErrTokenRevoked       = errors.New("이미 로그아웃된 토큰입니다")
	ErrEmailTaken         = errors.New("이미 등록된 이메일입니다")
)

// TokenBlacklist 로그아웃 토큰 저장소 (Redis)
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 관리자 인증
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout access 토큰과 (있으면) refresh 토큰을 남은 유효기간 동안 무효화
	Logout(ctx context.Context, access *jwt.Claims, refreshToken string) error
	Session(ctx context.Context, userID string) (*dto.SessionResponse, error)
	CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.UserResponse, error)
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewAuthService AuthService 생성, blacklist 는 nil 가능 (로그아웃 무효화 생략)
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		validate:  validator.New(),
		logger:    logger,
	}
}

func toUserResponse(u *model.AdminUser) dto.UserResponse {
	return dto.UserResponse{ID: u.UserID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func (s *authService) issue(u *model.AdminUser) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(u.UserID, u.Email, u.Role)
	if err != nil {
		s.logger.Error("Access Token 발급 실패", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(u.UserID, u.Email, u.Role)
	if err != nil {
		s.logger.Error("Refresh Token 발급 실패", zap.Error(err))
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         toUserResponse(u),
	}, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 사용자 조회
	user, err := s.repo.Admin.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("사용자 조회 실패", zap.Error(err))
		return nil, err
	}

	// 2. 비밀번호 확인 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 토큰 발급
	s.logger.Info("관리자 로그인", zap.String("user_id", user.UserID))
	return s.issue(user)
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseTokenOfType(req.RefreshToken, jwt.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("블랙리스트 조회 실패", zap.Error(err))
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	user, err := s.repo.Admin.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("사용자 조회 실패", zap.Error(err))
		return nil, err
	}

	// 사용한 refresh 토큰은 다시 쓸 수 없다
	if err := s.revoke(ctx, claims); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) revoke(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("토큰 블랙리스트 등록 실패", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Logout(ctx context.Context, access *jwt.Claims, refreshToken string) error {
	if err := s.revoke(ctx, access); err != nil {
		return err
	}
	if refreshToken != "" {
		// 만료·위조된 refresh 토큰은 무시
		if claims, err := s.jwtMgr.ParseTokenOfType(refreshToken, jwt.TokenTypeRefresh); err == nil && claims.UserID == access.UserID {
			if err := s.revoke(ctx, claims); err != nil {
				return err
			}
		}
	}
	s.logger.Info("관리자 로그아웃", zap.String("user_id", access.UserID))
	return nil
}

// ────────────────────── Session ──────────────────────

func (s *authService) Session(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	user, err := s.repo.Admin.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("사용자 조회 실패", zap.Error(err))
		return nil, err
	}
	return &dto.SessionResponse{Authenticated: true, User: toUserResponse(user)}, nil
}

// ────────────────────── CreateAdmin ──────────────────────

func (s *authService) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.UserResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("비밀번호 해시 실패", zap.Error(err))
		return nil, err
	}

	user := &model.AdminUser{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.repo.Admin.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateRecord) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("관리자 생성 실패", zap.Error(err))
		return nil, err
	}

	s.logger.Info("관리자 생성", zap.String("user_id", user.UserID), zap.String("role", user.Role))
	resp := toUserResponse(user)
	return &resp, nil
}

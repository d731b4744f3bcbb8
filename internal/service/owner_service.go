package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/model"
	"whereabouts/backend/internal/repository"
	pkgerrors "whereabouts/backend/pkg/errors"
	"whereabouts/backend/pkg/jwt"
)

// ── 摊主模块业务错误 ──

var (
	ErrOwnerNotFound = pkgerrors.NotFound("摊主不存在")
)

// TokenBlacklist 令牌黑名单（Redis 实现见 pkg/redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// OwnerService 摊主（外部身份）业务接口
//
// 身份认证由外部身份组件完成，本服务信任其传入的 subject，
// 只负责建档与签发 Access Token。
type OwnerService interface {
	// SignIn 首次登录建档，之后刷新展示信息；返回 Access Token
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.TokenResponse, error)
	GetCurrent(ctx context.Context, ownerID string) (*dto.OwnerResponse, error)
	// SignOut 将当前 Token 加入黑名单直至其过期
	SignOut(ctx context.Context, jti string, expiresAt time.Time) error
}

type ownerService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewOwnerService 创建 OwnerService 实例；blacklist 可为 nil（Redis 不可用）
func NewOwnerService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) OwnerService {
	return &ownerService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── SignIn ──────────────────────

func (s *ownerService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.TokenResponse, error) {
	var owner *model.Owner
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Owner.GetBySubject(ctx, req.Subject)
		switch {
		case err == nil:
			existing.DisplayName = req.DisplayName
			existing.Email = req.Email
			existing.PictureURL = req.PictureURL
			if err := tx.Owner.Update(ctx, existing); err != nil {
				return err
			}
			owner = existing
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		owner = &model.Owner{
			ExternalSubject: req.Subject,
			DisplayName:     req.DisplayName,
			Email:           req.Email,
			PictureURL:      req.PictureURL,
		}
		return tx.Owner.Create(ctx, owner)
	})
	if err != nil {
		s.logger.Error("摊主建档失败", zap.String("subject", req.Subject), zap.Error(err))
		return nil, err
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(owner.OwnerID)
	if err != nil {
		s.logger.Error("生成 Access Token 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("摊主登录", zap.String("owner_id", owner.OwnerID))

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		Owner:       *toOwnerResponse(owner),
	}, nil
}

// ────────────────────── GetCurrent ──────────────────────

func (s *ownerService) GetCurrent(ctx context.Context, ownerID string) (*dto.OwnerResponse, error) {
	owner, err := s.repo.Owner.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		s.logger.Error("查询摊主失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}
	return toOwnerResponse(owner), nil
}

// ────────────────────── SignOut ──────────────────────

func (s *ownerService) SignOut(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Error("加入黑名单失败", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

func toOwnerResponse(o *model.Owner) *dto.OwnerResponse {
	return &dto.OwnerResponse{
		ID:          o.OwnerID,
		DisplayName: o.DisplayName,
		Email:       o.Email,
		PictureURL:  o.PictureURL,
	}
}

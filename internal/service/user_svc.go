package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tradefair/internal/model"
	"tradefair/internal/repository"
)

// ==================== 认证主体 ====================

// Principal 请求级认证主体
// 由身份中间件从外部身份令牌解出，显式传入各服务入口，
// 不依赖任何环境全局状态，便于脱离真实身份服务做测试
type Principal struct {
	ClerkUserID string
	Role        string
}

// IsAnonymous 是否匿名（无认证主体）
func (p *Principal) IsAnonymous() bool {
	return p == nil || p.ClerkUserID == ""
}

// resolveUser 认证主体 → 存量用户
// 所有组件入口的第一步：无主体返回 ErrUnauthenticated，
// 主体无对应用户返回 ErrNotFound
func resolveUser(ctx context.Context, users repository.UserRepository, p *Principal) (*model.User, error) {
	if p.IsAnonymous() {
		return nil, ErrUnauthenticated
	}
	user, err := users.GetByClerkID(ctx, p.ClerkUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 用户未注册", ErrNotFound)
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return user, nil
}

// ==================== UserService ====================

// UserService 用户服务
type UserService struct {
	users repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ResolveCurrent 解析当前用户
func (s *UserService) ResolveCurrent(ctx context.Context, p *Principal) (*model.User, error) {
	return resolveUser(ctx, s.users, p)
}

// Sync 首次认证接触时落库（幂等）
// 已存在则只刷新展示名与邮箱，角色保持不变
func (s *UserService) Sync(ctx context.Context, p *Principal, displayName, email string) (*model.User, error) {
	if p.IsAnonymous() {
		return nil, ErrUnauthenticated
	}

	user := &model.User{
		ClerkUserID: p.ClerkUserID,
		Role:        model.RoleBuyer,
		DisplayName: displayName,
		Email:       email,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("同步用户失败: %w", err)
	}

	return s.users.GetByClerkID(ctx, p.ClerkUserID)
}

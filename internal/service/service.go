package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"shorturl-service/internal/metrics"
	"shorturl-service/internal/model"
	"shorturl-service/internal/store"
)

// ErrInvalidURL 表示目标地址不是合法的绝对 http(s) URL
var ErrInvalidURL = errors.New("invalid target url")

// Store 是服务依赖的持久化接口，由 store.MappingStore 实现
type Store interface {
	Insert(ctx context.Context, urlKey, targetURL, secretKey string) (*model.Mapping, error)
	FindByURLKey(ctx context.Context, urlKey string) (*model.Mapping, error)
	FindBySecretKey(ctx context.Context, secretKey string) (*model.Mapping, error)
	IncrementClicks(ctx context.Context, urlKey string) error
	Deactivate(ctx context.Context, secretKey string) error
}

// KeyGenerator 生成一对短码和管理密钥
type KeyGenerator interface {
	Generate() (urlKey, secretKey string, err error)
}

// MappingService 负责短链接的创建、解析和管理
type MappingService struct {
	store       Store
	keys        KeyGenerator
	maxAttempts int
	validate    *validator.Validate
	logger      *zap.SugaredLogger
}

// NewMappingService 创建服务实例，maxAttempts 为遇到键冲突时的最大尝试次数
func NewMappingService(s Store, keys KeyGenerator, maxAttempts int, logger *zap.SugaredLogger) *MappingService {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &MappingService{
		store:       s,
		keys:        keys,
		maxAttempts: maxAttempts,
		validate:    validator.New(),
		logger:      logger.Named("mapping_service"),
	}
}

// CreateMapping 校验目标地址后生成密钥并写入存储。
// 唯一约束冲突时换一对新密钥重试，超过 maxAttempts 次后返回 store.ErrKeyCollision。
func (s *MappingService) CreateMapping(ctx context.Context, targetURL string) (*model.Mapping, error) {
	if err := s.ValidateURL(targetURL); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		urlKey, secretKey, err := s.keys.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate keys: %w", err)
		}

		mapping, err := s.store.Insert(ctx, urlKey, targetURL, secretKey)
		if err == nil {
			metrics.MappingsCreatedTotal.Inc()
			s.logger.Infow("短链接已创建", "url_key", mapping.URLKey, "attempt", attempt)
			return mapping, nil
		}
		if !errors.Is(err, store.ErrKeyCollision) {
			return nil, err
		}

		metrics.KeyCollisionsTotal.Inc()
		s.logger.Warnw("短码或密钥冲突，重新生成", "url_key", urlKey, "attempt", attempt)
	}

	s.logger.Errorf("已尝试 %d 次生成密钥，但均存在冲突", s.maxAttempts)
	return nil, store.ErrKeyCollision
}

// Resolve 返回启用中的短码对应的目标地址，并在返回前同步累加点击数。
// 点击数更新失败只记录日志，不影响跳转。
func (s *MappingService) Resolve(ctx context.Context, urlKey string) (string, error) {
	mapping, err := s.store.FindByURLKey(ctx, urlKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.RedirectsTotal.WithLabelValues("miss").Inc()
		}
		return "", err
	}
	metrics.RedirectsTotal.WithLabelValues("hit").Inc()

	if err := s.store.IncrementClicks(ctx, mapping.URLKey); err != nil {
		metrics.ClickIncrementErrorsTotal.Inc()
		s.logger.Errorw("更新点击数失败", "url_key", mapping.URLKey, "error", err)
	}
	return mapping.TargetURL, nil
}

// Info 通过管理密钥查询映射，不区分启用状态
func (s *MappingService) Info(ctx context.Context, secretKey string) (*model.Mapping, error) {
	return s.store.FindBySecretKey(ctx, secretKey)
}

// Delete 软删除映射。密钥不存在返回 store.ErrNotFound，已停用的映射再次删除视为成功。
func (s *MappingService) Delete(ctx context.Context, secretKey string) error {
	mapping, err := s.store.FindBySecretKey(ctx, secretKey)
	if err != nil {
		return err
	}
	if !mapping.IsActive {
		return nil
	}

	if err := s.store.Deactivate(ctx, mapping.SecretKey); err != nil {
		return err
	}
	metrics.DeactivationsTotal.Inc()
	s.logger.Infow("短链接已停用", "url_key", mapping.URLKey)
	return nil
}

// ValidateURL 只接受带主机名的 http/https 绝对地址
func (s *MappingService) ValidateURL(targetURL string) error {
	if err := s.validate.Var(targetURL, "required,http_url"); err != nil {
		return ErrInvalidURL
	}

	u, err := url.Parse(targetURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	return nil
}

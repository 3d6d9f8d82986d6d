package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shorturl-service/internal/model"
)

var (
	// ErrNotFound 表示没有符合条件的映射。
	// 对短码查询来说，不存在和已停用返回同一个错误，避免泄露删除状态。
	ErrNotFound = errors.New("mapping not found")
	// ErrKeyCollision 表示短码或管理密钥违反唯一约束
	ErrKeyCollision = errors.New("key collision")
)

// MappingStore 基于 gorm 的 urls 表访问层。
// 每个方法只执行一条语句，连接由 gorm 的连接池借出并在返回前归还。
type MappingStore struct {
	db *gorm.DB
}

// NewMappingStore 创建存储实例，db 需要以 TranslateError: true 打开
func NewMappingStore(db *gorm.DB) *MappingStore {
	return &MappingStore{db: db}
}

// Insert 插入一条新映射。唯一性完全交给数据库约束判断，不做先查后写。
func (s *MappingStore) Insert(ctx context.Context, urlKey, targetURL, secretKey string) (*model.Mapping, error) {
	mapping := &model.Mapping{
		URLKey:    urlKey,
		TargetURL: targetURL,
		SecretKey: secretKey,
		IsActive:  true,
	}

	if err := s.db.WithContext(ctx).Create(mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrKeyCollision
		}
		return nil, fmt.Errorf("insert mapping: %w", err)
	}
	return mapping, nil
}

// FindByURLKey 只返回处于启用状态的映射
func (s *MappingStore) FindByURLKey(ctx context.Context, urlKey string) (*model.Mapping, error) {
	var mapping model.Mapping
	err := s.db.WithContext(ctx).
		Where("url_key = ? AND is_active = ?", urlKey, true).
		First(&mapping).Error
	if err != nil {
		return nil, translateLookupError(err)
	}
	return &mapping, nil
}

// FindBySecretKey 不区分启用状态，已删除的映射依然可以被其所有者查看
func (s *MappingStore) FindBySecretKey(ctx context.Context, secretKey string) (*model.Mapping, error) {
	var mapping model.Mapping
	err := s.db.WithContext(ctx).
		Where("secret_key = ?", secretKey).
		First(&mapping).Error
	if err != nil {
		return nil, translateLookupError(err)
	}
	return &mapping, nil
}

// IncrementClicks 在一条 UPDATE 中原子地加一；目标行不存在时什么也不做
func (s *MappingStore) IncrementClicks(ctx context.Context, urlKey string) error {
	err := s.db.WithContext(ctx).
		Model(&model.Mapping{}).
		Where("url_key = ?", urlKey).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("increment clicks: %w", err)
	}
	return nil
}

// Deactivate 软删除映射；重复调用或目标行不存在都不是错误
func (s *MappingStore) Deactivate(ctx context.Context, secretKey string) error {
	err := s.db.WithContext(ctx).
		Model(&model.Mapping{}).
		Where("secret_key = ?", secretKey).
		UpdateColumn("is_active", false).Error
	if err != nil {
		return fmt.Errorf("deactivate mapping: %w", err)
	}
	return nil
}

// Ping 检查数据库连接是否可用
func (s *MappingStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translateLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("find mapping: %w", err)
}

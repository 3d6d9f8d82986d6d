// Package testutil 提供测试用的内存数据库
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"

	"shorturl-service/internal/config"
	"shorturl-service/pkg/database"
)

// NewTestDB 为每个测试创建一个独立的、已迁移的 sqlite 内存库，测试结束时关闭
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.Default().Database
	cfg.Path = fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Init(cfg, nil)
	if err != nil {
		t.Fatalf("无法初始化内存数据库: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

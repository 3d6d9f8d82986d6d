package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shorturl-service/internal/config"
	"shorturl-service/internal/model"
)

// Init 按配置打开数据库连接池并迁移 urls 表
func Init(cfg config.DB, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		// 唯一约束冲突统一翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         newGormLogger(cfg.LogLevel, log),
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	if err := configurePool(connection, cfg); err != nil {
		return nil, err
	}

	migrator := connection
	if opts := tableOptions(cfg.Driver); opts != "" {
		migrator = connection.Set("gorm:table_options", opts)
	}
	if err := migrator.AutoMigrate(&model.Mapping{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return connection, nil
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg config.DB) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.Path), nil
	case config.DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.Charset)
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
}

// tableOptions 返回建表附加选项。
// mysql 默认排序规则不区分大小写，url_key 和 secret_key 必须按字节比较
func tableOptions(driver string) string {
	if driver == config.DriverMySQL {
		return "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"
	}
	return ""
}

func configurePool(db *gorm.DB, cfg config.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 && cfg.Driver == config.DriverSQLite {
		// sqlite 只允许单写者，内存库在多个连接之间也不共享
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	return nil
}

// newGormLogger 让 gorm 的日志通过 zap 输出
func newGormLogger(level string, log *zap.Logger) gormlogger.Interface {
	if log == nil {
		return gormlogger.Discard
	}

	var lvl gormlogger.LogLevel
	switch level {
	case "silent":
		lvl = gormlogger.Silent
	case "error":
		lvl = gormlogger.Error
	case "info":
		lvl = gormlogger.Info
	default:
		lvl = gormlogger.Warn
	}

	return gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}

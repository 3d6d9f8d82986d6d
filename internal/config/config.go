package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 主配置结构
type Config struct {
	App      App    `yaml:"app"`
	Server   Server `yaml:"server"`
	Database DB     `yaml:"database"`
	Keys     Keys   `yaml:"keys"`
	Log      Log    `yaml:"log"`
}

// 应用配置
type App struct {
	Name    string `yaml:"name"`
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
}

// 服务器配置
type Server struct {
	Port            int `yaml:"port"`
	ReadTimeout     int `yaml:"read_timeout"`
	WriteTimeout    int `yaml:"write_timeout"`
	ShutdownTimeout int `yaml:"shutdown_timeout"`
}

// 数据库配置
// Driver 为 sqlite 时只使用 Path，为 mysql 时使用 Host/Port/User/Password/Name
type DB struct {
	Driver          string `yaml:"driver"`
	Path            string `yaml:"path"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	Charset         string `yaml:"charset"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 秒
	LogLevel        string `yaml:"log_level"`
}

// 短码与管理密钥的生成参数
type Keys struct {
	URLKeyLength   int `yaml:"url_key_length"`
	SecretKeyBytes int `yaml:"secret_key_bytes"`
	MaxAttempts    int `yaml:"max_attempts"`
}

// 日志配置
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Default 返回内置默认配置，配置文件中的值会覆盖它
func Default() *Config {
	return &Config{
		App: App{Name: "url-shortener", Mode: "debug", Version: "1.0.0"},
		Server: Server{
			Port:            8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			ShutdownTimeout: 5,
		},
		Database: DB{
			Driver:          DriverSQLite,
			Path:            "url_shortener.db",
			Charset:         "utf8mb4",
			MaxIdleConns:    5,
			ConnMaxLifetime: 3600,
			LogLevel:        "warn",
		},
		Keys: Keys{URLKeyLength: 6, SecretKeyBytes: 16, MaxAttempts: 3},
		Log: Log{
			Level:      "info",
			File:       "./logs/app.log",
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
		},
	}
}

// 加载配置
// 文件不存在时直接使用默认配置
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cfg, cfg.Validate()
	case err != nil:
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置取值是否合法
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port 无效: %d", c.Server.Port)
	}
	if c.Keys.URLKeyLength <= 0 {
		return fmt.Errorf("keys.url_key_length 必须大于 0: %d", c.Keys.URLKeyLength)
	}
	if c.Keys.SecretKeyBytes < 16 {
		return fmt.Errorf("keys.secret_key_bytes 不能小于 16: %d", c.Keys.SecretKeyBytes)
	}
	if c.Keys.MaxAttempts <= 0 {
		return fmt.Errorf("keys.max_attempts 必须大于 0: %d", c.Keys.MaxAttempts)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path 不能为空")
		}
	case DriverMySQL:
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("mysql 需要配置 database.host 和 database.name")
		}
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	return nil
}

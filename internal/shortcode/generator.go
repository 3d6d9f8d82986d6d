package shortcode

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"

	"go.uber.org/zap"
)

const (
	// Charset 包含用于生成短码的所有字符
	Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultURLKeyLength 是短码的默认长度
	DefaultURLKeyLength = 6
	// DefaultSecretKeyBytes 是管理密钥的默认随机字节数
	DefaultSecretKeyBytes = 16
	// maxReservedRetries 是短码命中保留路径时的最大重新生成次数
	maxReservedRetries = 10
)

// reserved 中的短码会被固定路由遮蔽，生成时跳过
var reserved = map[string]struct{}{
	"health":  {},
	"metrics": {},
	"swagger": {},
	"admin":   {},
	"url":     {},
}

var charsetSize = big.NewInt(int64(len(Charset)))

// Generator 负责生成短码和管理密钥
// 只做生成，唯一性由存储层的唯一约束保证
type Generator struct {
	urlKeyLength   int
	secretKeyBytes int
	logger         *zap.SugaredLogger
}

// NewGenerator 创建一个新的生成器，非正数参数使用默认值
func NewGenerator(urlKeyLength, secretKeyBytes int, logger *zap.SugaredLogger) *Generator {
	if urlKeyLength <= 0 {
		urlKeyLength = DefaultURLKeyLength
	}
	if secretKeyBytes <= 0 {
		secretKeyBytes = DefaultSecretKeyBytes
	}
	return &Generator{
		urlKeyLength:   urlKeyLength,
		secretKeyBytes: secretKeyBytes,
		logger:         logger.Named("shortcode_generator"),
	}
}

// Generate 同时生成短码和管理密钥
func (g *Generator) Generate() (urlKey, secretKey string, err error) {
	urlKey, err = g.GenerateURLKey()
	if err != nil {
		return "", "", err
	}
	secretKey, err = g.GenerateSecretKey()
	if err != nil {
		return "", "", err
	}
	return urlKey, secretKey, nil
}

// GenerateURLKey 生成一个不与保留路径重名的短码
func (g *Generator) GenerateURLKey() (string, error) {
	for i := 0; i < maxReservedRetries; i++ {
		code, err := g.generateRandomString(g.urlKeyLength)
		if err != nil {
			return "", err
		}
		if _, ok := reserved[code]; !ok {
			return code, nil
		}
		g.logger.Debugf("短码 %q 与保留路径重名，重新生成", code)
	}
	return g.generateRandomString(g.urlKeyLength)
}

// GenerateSecretKey 生成 URL 安全的管理密钥（无填充 base64，16 字节得到 22 个字符）
func (g *Generator) GenerateSecretKey() (string, error) {
	b := make([]byte, g.secretKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// generateRandomString 使用加密安全的随机数生成器生成一个给定长度的字符串
func (g *Generator) generateRandomString(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, charsetSize)
		if err != nil {
			return "", err
		}
		b[i] = Charset[num.Int64()]
	}
	return string(b), nil
}

package storage

import (
	"context"
	"fmt"

	"foodgram/internal/config"
)

// ImageStore 菜谱图片存储
type ImageStore interface {
	// Save 保存图片，返回存储键
	Save(ctx context.Context, key string, data []byte, contentType string) error
	// Delete 删除图片，不存在时不报错
	Delete(ctx context.Context, key string) error
	// URL 图片的访问地址
	URL(key string) string
}

// New 按配置创建图片存储
func New(ctx context.Context, cfg *config.MediaConfig) (ImageStore, error) {
	switch cfg.Backend {
	case "local", "":
		return NewLocalStore(cfg.Root, cfg.URLPrefix)
	case "s3":
		return NewS3Store(ctx, &cfg.S3)
	default:
		return nil, fmt.Errorf("不支持的图片存储: %s", cfg.Backend)
	}
}

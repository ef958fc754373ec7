package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore 本地文件系统存储
type LocalStore struct {
	root      string
	urlPrefix string
}

// NewLocalStore 创建本地存储，root 不存在时自动创建
func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("创建图片目录失败: %w", err)
	}
	return &LocalStore{root: root, urlPrefix: urlPrefix}, nil
}

// Root 存储根目录
func (s *LocalStore) Root() string {
	return s.root
}

// path 将存储键限制在根目录内
func (s *LocalStore) path(key string) string {
	return filepath.Join(s.root, filepath.Clean("/"+key))
}

// Save 保存图片
func (s *LocalStore) Save(_ context.Context, key string, data []byte, _ string) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建图片目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入图片失败: %w", err)
	}
	return nil
}

// Delete 删除图片
func (s *LocalStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除图片失败: %w", err)
	}
	return nil
}

// URL 图片访问地址
func (s *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.urlPrefix + key
}

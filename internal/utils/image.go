package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// DecodedImage 解码后的上传图片
type DecodedImage struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Ext 文件扩展名
func (d *DecodedImage) Ext() string {
	if d.Format == "jpeg" {
		return ".jpg"
	}
	return "." + d.Format
}

// ContentType MIME类型
func (d *DecodedImage) ContentType() string {
	return "image/" + d.Format
}

// DecodeBase64Image 解析 data:image/png;base64,... 或纯base64字符串
func DecodeBase64Image(value string) (*DecodedImage, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("图片为空")
	}

	if strings.HasPrefix(value, "data:") {
		idx := strings.Index(value, ";base64,")
		if idx < 0 {
			return nil, errors.New("图片必须使用base64编码")
		}
		value = value[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("base64解码失败: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("无法识别的图片格式: %w", err)
	}

	return &DecodedImage{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// CheckMinSize 检查图片最小尺寸
func (d *DecodedImage) CheckMinSize(minWidth, minHeight int) error {
	if d.Width < minWidth {
		return fmt.Errorf("图片宽度小于 %d px，请上传至少 %dx%d px 的图片", minWidth, minWidth, minHeight)
	}
	if d.Height < minHeight {
		return fmt.Errorf("图片高度小于 %d px，请上传至少 %dx%d px 的图片", minHeight, minWidth, minHeight)
	}
	return nil
}

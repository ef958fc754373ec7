package service

import (
	"errors"
	"fmt"

	"foodgram/internal/errs"

	"gorm.io/gorm"
)

// lookupError 记录不存在时转为404，其余错误附带上下文返回
func lookupError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound(entity)
	}
	return fmt.Errorf("查询%s失败: %w", entity, err)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

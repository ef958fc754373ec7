package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// 错误哨兵值，AppError 通过 Unwrap 暴露它们
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrNothingToRemove = errors.New("nothing to remove")
	ErrSelfFollow      = errors.New("self follow")
	ErrForbidden       = errors.New("operation not allowed")
	ErrUnauthorized    = errors.New("unauthorized")
)

// AppError 带HTTP状态码的业务错误
type AppError struct {
	StatusCode int
	Message    string
	// Fields 字段级错误，仅校验错误使用
	Fields map[string]string

	kind error
}

func (e *AppError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Fields)
}

// Unwrap 使 errors.Is(err, ErrNotFound) 等判断成立
func (e *AppError) Unwrap() error {
	return e.kind
}

// Validation 校验错误（400），field 为出错字段
func Validation(field, message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Fields:     map[string]string{field: message},
		kind:       ErrValidation,
	}
}

// ValidationFields 多字段校验错误（400）
func ValidationFields(fields map[string]string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Message:    "请求参数不合法",
		Fields:     fields,
		kind:       ErrValidation,
	}
}

// NotFound 资源不存在（404）
func NotFound(entity string) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Message:    entity + "不存在",
		kind:       ErrNotFound,
	}
}

// AlreadyExists 重复操作（400）
func AlreadyExists(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
		kind:       ErrAlreadyExists,
	}
}

// NothingToRemove 要删除的关联不存在（400）
func NothingToRemove(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
		kind:       ErrNothingToRemove,
	}
}

// SelfFollow 不能订阅自己（400）
func SelfFollow() *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Message:    "不能订阅自己",
		kind:       ErrSelfFollow,
	}
}

// Forbidden 无权操作（403）
func Forbidden(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusForbidden,
		Message:    message,
		kind:       ErrForbidden,
	}
}

// Unauthorized 未认证（401）
func Unauthorized(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
		kind:       ErrUnauthorized,
	}
}

// StatusCode 返回错误对应的HTTP状态码，未知错误为500
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsNothingToRemove(err error) bool {
	return errors.Is(err, ErrNothingToRemove)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// InitValidator 在gin的校验器上注册自定义规则
func InitValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerRules(v)
	}
}

var validate *validator.Validate

// GetValidator 获取独立的验证器实例
func GetValidator() *validator.Validate {
	if validate == nil {
		validate = validator.New()
		registerRules(validate)
	}
	return validate
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("username", validateUsername)
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// validateUsername 验证用户名
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if len(username) == 0 || len(username) > 150 {
		return false
	}
	return usernamePattern.MatchString(username)
}

// ValidateStruct 验证结构体
func ValidateStruct(s interface{}) error {
	if err := GetValidator().Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidationErrorFields 将校验错误转换为 字段 -> 消息
func ValidationErrorFields(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fieldMessage(e)
	}
	return fields
}

func fieldMessage(e validator.FieldError) string {
	param := e.Param()
	switch e.Tag() {
	case "required":
		return "必填字段"
	case "min":
		return fmt.Sprintf("不能小于%s", param)
	case "max":
		return fmt.Sprintf("不能大于%s", param)
	case "gt":
		return fmt.Sprintf("必须大于%s", param)
	case "gte":
		return fmt.Sprintf("必须大于等于%s", param)
	case "email":
		return "必须是有效的邮箱地址"
	case "hexcolor":
		return "必须是十六进制颜色，例如 #E26C2D"
	case "username":
		return "只能包含字母、数字和 @/./+/-/_"
	case "slug":
		return "只能包含字母、数字、-和_"
	case "len":
		return fmt.Sprintf("长度必须为%s", param)
	case "dive":
		return "列表元素不合法"
	default:
		return fmt.Sprintf("验证失败: %s", e.Tag())
	}
}

// formatValidationError 格式化验证错误
func formatValidationError(err error) error {
	fields := ValidationErrorFields(err)
	if len(fields) == 0 {
		return err
	}

	parts := make([]string, 0, len(fields))
	for field, message := range fields {
		parts = append(parts, field+": "+message)
	}
	sort.Strings(parts)
	return errors.New(strings.Join(parts, "; "))
}

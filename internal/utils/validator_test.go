package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,username"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
}

func TestValidationErrorFieldsUseJSONNames(t *testing.T) {
	err := GetValidator().Struct(sampleRequest{Email: "nope", Username: "bad name!", Color: "red"})

	fields := ValidationErrorFields(err)
	assert.Equal(t, "必须是有效的邮箱地址", fields["email"])
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "color")
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(sampleRequest{Email: "a@b.co", Username: "chef.bob+1", Color: "#E26C2D"}))

	err := ValidateStruct(sampleRequest{})
	assert.EqualError(t, err, "email: 必填字段; username: 必填字段")
}

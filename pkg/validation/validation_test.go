package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "skillforge/pkg/domain-errors"
)

type issueShape struct {
	RecipientAddress string   `json:"recipient_address" validate:"required,eth_addr"`
	RecipientName    string   `json:"recipient_name" validate:"notblank,max=128"`
	RecipientEmail   string   `json:"recipient_email" validate:"required,email"`
	Skills           []string `json:"skills" validate:"min=1,max=32,dive,max=64"`
}

func validShape() issueShape {
	return issueShape{
		RecipientAddress: "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		RecipientName:    "Emma Wilson",
		RecipientEmail:   "emma.wilson@email.com",
		Skills:           []string{"Python"},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		require.NoError(t, Validate(validShape()))
	})

	tests := []struct {
		name   string
		mutate func(*issueShape)
		code   dErrors.Code
		msg    string
	}{
		{"bad address", func(s *issueShape) { s.RecipientAddress = "0x123" }, dErrors.CodeInvalidAddress, "recipient_address must be a valid Ethereum address"},
		{"bad email", func(s *issueShape) { s.RecipientEmail = "not-an-email" }, dErrors.CodeInvalidEmail, "recipient_email must be a valid email"},
		{"no skills", func(s *issueShape) { s.Skills = nil }, dErrors.CodeEmptySkills, "skills must be at least 1"},
		{"blank name", func(s *issueShape) { s.RecipientName = "   " }, dErrors.CodeValidation, "recipient_name must not be blank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape := validShape()
			tt.mutate(&shape)
			err := Validate(shape)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, tt.code), "got %v", err)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "recipient_address", toSnakeCase("RecipientAddress"))
	assert.Equal(t, "course_id", toSnakeCase("CourseID"))
}

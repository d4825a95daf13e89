package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/iurelen/delicious-project-with-react/internal/errors"
)

type sampleRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=30"`
	CookingTime int    `json:"cooking_time" validate:"gte=1"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{
		Email:       "cook@example.com",
		Username:    "cook",
		CookingTime: 30,
	})
	assert.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{Email: "not-an-email", Username: "ab"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	// Details are keyed by JSON field name.
	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "username")
	assert.Contains(t, details, "cooking_time")
}

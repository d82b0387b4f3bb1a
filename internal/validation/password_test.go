package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     error
	}{
		{"s3cret!pass", nil},
		{"a1!", ErrPasswordTooShort},
		{strings.Repeat("a1!", 25), ErrPasswordTooLong},
		{"nodigits!here", ErrPasswordNoDigit},
		{"n0specials", ErrPasswordNoSpecial},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidatePassword(tt.password), tt.password)
	}
}

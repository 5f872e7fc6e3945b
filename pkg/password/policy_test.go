package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckComplexity(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Abc12345!", false},
		{"ValidWithOtherSpecial", "Str0ng,pass", false},
		{"NoUppercaseOrSpecial", "abc12345", true},
		{"TooShort", "Ab1!", true},
		{"NoDigit", "Abcdefgh!", true},
		{"NoLowercase", "ABC12345!", true},
		{"NoSpecialChar", "Abc123456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CheckComplexity(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

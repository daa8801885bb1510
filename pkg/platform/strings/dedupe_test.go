package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  openid  ", "profile  ", "  email"},
			expected: []string{"openid", "profile", "email"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"token", "code", "token", "id_token", "code"},
			expected: []string{"token", "code", "id_token"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"openid", "", "  ", "email"},
			expected: []string{"openid", "email"},
		},
		{
			name:     "preserves case",
			input:    []string{"Foo", "foo", "FOO"},
			expected: []string{"Foo", "foo", "FOO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DedupeAndTrim(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSplitSpaceDelimited(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "no values",
			input:    nil,
			expected: nil,
		},
		{
			name:     "single space-delimited value",
			input:    []string{"code id_token  token"},
			expected: []string{"code", "id_token", "token"},
		},
		{
			name:     "repeated form values are flattened",
			input:    []string{"code", "id_token code"},
			expected: []string{"code", "id_token"},
		},
		{
			name:     "blank value yields nothing",
			input:    []string{"   "},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitSpaceDelimited(tt.input...))
		})
	}
}

func TestContainsAll(t *testing.T) {
	assert.True(t, ContainsAll([]string{"openid", "profile"}, []string{"profile"}))
	assert.True(t, ContainsAll([]string{"openid"}, nil))
	assert.False(t, ContainsAll([]string{"openid"}, []string{"openid", "email"}))
}

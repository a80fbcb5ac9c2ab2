package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Lowercase", "Jo.Lee@Example.COM", "jo.lee@example.com"},
		{"Trim", "  a@x.com\t", "a@x.com"},
		{"Empty", "", ""},
		{"Whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.in))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Formatted with trunk prefix", "+1 (555) 123-4567", "5551234567"},
		{"Digits only", "5551234567", "5551234567"},
		{"Dotted", "555.123.4567", "5551234567"},
		{"Only one leading 1 dropped", "11234", "1234"},
		{"No digits", "n/a", ""},
		{"Empty", "", ""},
		{"Just the prefix", "1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.in))
		})
	}

	t.Run("Equivalence", func(t *testing.T) {
		assert.Equal(t, NormalizePhone("+1 (555) 123-4567"), NormalizePhone("5551234567"))
		assert.Equal(t, "5551234567", NormalizePhone(NormalizePhone("+1 (555) 123-4567")))
	})
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Lowercase and trim", "  Jo Lee ", "jo lee"},
		{"Punctuation stripped", "O'Brien, Mary-Jane", "obrien maryjane"},
		{"Collapse spaces", "Jo    Lee", "jo lee"},
		{"Digits kept", "Unit 42", "unit 42"},
		{"Tabs are stripped not split", "Jo\tLee", "jolee"},
		{"Non ASCII letters stripped", "José", "jos"},
		{"Empty", "", ""},
		{"Only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNameTokens(t *testing.T) {
	assert.Equal(t, []string{"jo", "lee"}, NameTokens("jo lee"))
	assert.Empty(t, NameTokens(""))
	assert.Equal(t, []string{"jo"}, NameTokens("jo"))
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "jo.lee", EmailLocalPart(" Jo.Lee@x.com"))
	assert.Equal(t, "nodomain", EmailLocalPart("nodomain"))
	assert.Equal(t, "", EmailLocalPart("@x.com"))
	assert.Equal(t, "", EmailLocalPart(""))
}

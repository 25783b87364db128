package provider

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMaskSecretLongKeepsEnds(t *testing.T) {
	secret := "sk-proj-abcdefghijklmnopqrstuvwxyz123456"
	masked := MaskSecret(secret)

	assert.Equal(t, "sk-proj-...3456", masked)
	assert.NotContains(t, masked, "abcdefghijklmnop")
}

func TestMaskSecretShortIsConstant(t *testing.T) {
	for _, secret := range []string{"", "x", "twelve-chars"} {
		assert.Equal(t, "***", MaskSecret(secret))
	}
}

func TestMaskSecretBoundary(t *testing.T) {
	// Exactly 12 characters still collapses; 13 keeps the ends.
	assert.Equal(t, "***", MaskSecret("123456789012"))
	assert.Equal(t, "12345678...0123", MaskSecret("1234567890123"))
}

func TestMaskSecretMultibyte(t *testing.T) {
	// 16 code points, multibyte throughout; the cut must land on rune
	// boundaries and the result must stay valid UTF-8.
	secret := "пароль-秘密-ключ12"
	masked := MaskSecret(secret)

	assert.True(t, utf8.ValidString(masked))
	assert.Equal(t, "пароль-秘...юч12", masked)

	// 12 code points (but far more than 12 bytes) still collapses.
	assert.Equal(t, "***", MaskSecret("密密密密密密密密密密密密"))
}

func TestCredentialsEmpty(t *testing.T) {
	assert.True(t, Credentials{}.Empty())
	assert.False(t, Credentials{Secret: "sk-x"}.Empty())
	assert.False(t, Credentials{Settings: map[string]string{"url": "http://localhost"}}.Empty())
}

func TestDescriptorSettingsBased(t *testing.T) {
	assert.False(t, Descriptor{Name: "openai"}.SettingsBased())
	assert.True(t, Descriptor{Name: "ollama", DefaultURL: "http://localhost:11434/api/generate"}.SettingsBased())
}

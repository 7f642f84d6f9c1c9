package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferralLink(t *testing.T) {
	link, err := GenerateReferralLink("my_bot", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/my_bot?start=abc123", link)

	_, err = GenerateReferralLink("", "abc123")
	assert.Error(t, err)

	_, err = GenerateReferralLink("my_bot", "")
	assert.Error(t, err)
}

func TestGenerateReferralQRCode(t *testing.T) {
	qr, err := GenerateReferralQRCode("my_bot", "abc123")
	require.NoError(t, err)
	assert.NotEmpty(t, qr)
	// PNG-сигнатура
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, qr[:4])
}

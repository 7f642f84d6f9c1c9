package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveInviteCode_RequiresKey(t *testing.T) {
	inviteCodeKey = nil
	_, err := DeriveInviteCode(42)
	assert.Error(t, err)

	assert.Error(t, InitInviteCodeKey(""))
}

func TestDeriveInviteCode_Deterministic(t *testing.T) {
	require.NoError(t, InitInviteCodeKey("test-secret"))

	code1, err := DeriveInviteCode(1001)
	require.NoError(t, err)
	code2, err := DeriveInviteCode(1001)
	require.NoError(t, err)

	// Код — чистая функция от (ключ, chatID): перевыдача невозможна.
	assert.Equal(t, code1, code2)
	assert.Len(t, code1, 30) // 15 байт в hex

	other, err := DeriveInviteCode(1002)
	require.NoError(t, err)
	assert.NotEqual(t, code1, other)
}

func TestDeriveInviteCode_KeyChangesCode(t *testing.T) {
	require.NoError(t, InitInviteCodeKey("key-one"))
	first, err := DeriveInviteCode(500)
	require.NoError(t, err)

	require.NoError(t, InitInviteCodeKey("key-two"))
	second, err := DeriveInviteCode(500)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hardhatMnemonic = "test test test test test test test test test test test junk"

func TestFromMnemonic_KnownVector(t *testing.T) {
	info, err := FromMnemonic(hardhatMnemonic)
	require.NoError(t, err)

	assert.True(t, strings.EqualFold("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", info.Address))
	assert.Equal(t, "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", info.PrivateKey)
	assert.Equal(t, hardhatMnemonic, info.Mnemonic)
}

func TestFromMnemonic_RejectsInvalidPhrase(t *testing.T) {
	_, err := FromMnemonic("not a real mnemonic phrase")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	info, err := Generate()
	require.NoError(t, err)

	assert.Len(t, strings.Fields(info.Mnemonic), 24)
	assert.True(t, strings.HasPrefix(info.Address, "0x"))
	assert.Len(t, info.Address, 42)
	assert.Len(t, info.PrivateKey, 66)

	again, err := FromMnemonic(info.Mnemonic)
	require.NoError(t, err)
	assert.Equal(t, info, again)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	info, err := Generate()
	require.NoError(t, err)

	blob, err := Encrypt(info, "deployment-secret")
	require.NoError(t, err)
	assert.NotContains(t, blob, info.PrivateKey)
	assert.NotContains(t, blob, info.Mnemonic)

	decoded, err := Decrypt(blob, "deployment-secret")
	require.NoError(t, err)
	assert.Equal(t, info, decoded)
}

func TestEncrypt_FreshSaltPerCall(t *testing.T) {
	info, err := FromMnemonic(hardhatMnemonic)
	require.NoError(t, err)

	a, err := Encrypt(info, "s")
	require.NoError(t, err)
	b, err := Encrypt(info, "s")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecrypt_WrongSecret(t *testing.T) {
	info, err := FromMnemonic(hardhatMnemonic)
	require.NoError(t, err)

	blob, err := Encrypt(info, "right")
	require.NoError(t, err)

	decoded, err := Decrypt(blob, "wrong")
	assert.ErrorIs(t, err, ErrDecryption)
	assert.Nil(t, decoded)
}

func TestDecrypt_Malformed(t *testing.T) {
	cases := []string{
		"",
		"plain-text",
		"v1:!!!not-base64!!!",
		"v1:AAAA",
	}
	for _, blob := range cases {
		_, err := Decrypt(blob, "secret")
		assert.Error(t, err, blob)
	}
}

func TestEmptySecret(t *testing.T) {
	info, err := FromMnemonic(hardhatMnemonic)
	require.NoError(t, err)

	_, err = Encrypt(info, "")
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = Decrypt("v1:AAAA", "")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

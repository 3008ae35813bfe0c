package envelope

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabianopinto/dotenvx/keypair"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	plaintext := "Hello, World!"
	token, err := Encrypt([]byte(plaintext), kp.PublicHex())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, Prefix))

	decrypted, err := Decrypt(token, kp.PrivateHex())
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	first, err := Encrypt([]byte("test"), kp.PublicHex())
	require.NoError(t, err)
	second, err := Encrypt([]byte("test"), kp.PublicHex())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	d1, err := Decrypt(first, kp.PrivateHex())
	require.NoError(t, err)
	d2, err := Decrypt(second, kp.PrivateHex())
	require.NoError(t, err)
	assert.Equal(t, "test", d1)
	assert.Equal(t, "test", d2)
}

func TestDecryptWrongKeyFails(t *testing.T) {
	kp1, err := keypair.Generate()
	require.NoError(t, err)
	kp2, err := keypair.Generate()
	require.NoError(t, err)

	token, err := Encrypt([]byte("secret"), kp1.PublicHex())
	require.NoError(t, err)

	_, err = Decrypt(token, kp2.PrivateHex())
	assert.Error(t, err)
}

func TestDecryptIdentityPassThrough(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	plain := "not_encrypted"
	out, err := Decrypt(plain, kp.PrivateHex())
	require.NoError(t, err)
	assert.Equal(t, plain, out)
}

func TestDecryptInvalidBase64(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	_, err = Decrypt("encrypted:!!!invalid!!!", kp.PrivateHex())
	assert.Error(t, err)
}

func TestDecryptFramingBoundary(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	short := base64.StdEncoding.EncodeToString(make([]byte, minTokenLen-1))
	_, err = Decrypt(Prefix+short, kp.PrivateHex())
	assert.Error(t, err)
}

func TestEncryptEmptyString(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	token, err := Encrypt([]byte(""), kp.PublicHex())
	require.NoError(t, err)
	decrypted, err := Decrypt(token, kp.PrivateHex())
	require.NoError(t, err)
	assert.Equal(t, "", decrypted)
}

func TestEncryptLongString(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	plaintext := strings.Repeat("a", 10000)
	token, err := Encrypt([]byte(plaintext), kp.PublicHex())
	require.NoError(t, err)
	decrypted, err := Decrypt(token, kp.PrivateHex())
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptUnicode(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	plaintext := "Hello, 世界! 🌍"
	token, err := Encrypt([]byte(plaintext), kp.PublicHex())
	require.NoError(t, err)
	decrypted, err := Decrypt(token, kp.PrivateHex())
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptInvalidRecipient(t *testing.T) {
	_, err := Encrypt([]byte("x"), "not-a-key")
	assert.Error(t, err)
}

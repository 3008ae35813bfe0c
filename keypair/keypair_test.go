package keypair

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	kp, err := Generate()
	require.NoError(t, err)
	assert.Len(t, kp.PublicHex(), PublicHexLen)
	assert.Len(t, kp.PrivateHex(), PrivateHexLen)
}

func TestFromPrivateHexRoundTrip(t *testing.T) {
	kp, err := Generate()
	require.NoError(t, err)

	recreated, err := FromPrivateHex(kp.PrivateHex())
	require.NoError(t, err)
	assert.Equal(t, kp.PublicHex(), recreated.PublicHex())
	assert.Equal(t, kp.PrivateHex(), recreated.PrivateHex())
}

func TestFromPublicHexRoundTrip(t *testing.T) {
	kp, err := Generate()
	require.NoError(t, err)

	pub, err := FromPublicHex(kp.PublicHex())
	require.NoError(t, err)
	assert.Equal(t, kp.PublicHex(), hex.EncodeToString(pub.SerializeCompressed()))
}

func TestFromPrivateHexInvalid(t *testing.T) {
	t.Run("wrong length", func(t *testing.T) {
		_, err := FromPrivateHex("abcd")
		assert.Error(t, err)
	})
	t.Run("not hex", func(t *testing.T) {
		_, err := FromPrivateHex(strings.Repeat("zz", 32))
		assert.Error(t, err)
	})
	t.Run("zero scalar", func(t *testing.T) {
		_, err := FromPrivateHex(strings.Repeat("00", 32))
		assert.Error(t, err)
	})
}

func TestFromPublicHexInvalid(t *testing.T) {
	t.Run("wrong length", func(t *testing.T) {
		_, err := FromPublicHex("abcd")
		assert.Error(t, err)
	})
	t.Run("bad prefix byte", func(t *testing.T) {
		kp, err := Generate()
		require.NoError(t, err)
		bad := "04" + kp.PublicHex()[2:]
		_, err = FromPublicHex(bad)
		assert.Error(t, err)
	})
}

func TestECDHAgreement(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)

	sharedAB := ECDH(a.Private(), b.Public())
	sharedBA := ECDH(b.Private(), a.Public())
	assert.Equal(t, sharedAB, sharedBA)
}

// Package envelope implements the ECIES envelope that replaces a plaintext
// .env value with an opaque, non-deterministic token: ephemeral ECDH over
// secp256k1, HKDF-SHA256 key derivation, and AES-256-GCM sealing.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"unicode/utf8"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/hkdf"

	"github.com/fabianopinto/dotenvx/internal/dotenverr"
	"github.com/fabianopinto/dotenvx/keypair"
)

// Prefix marks a value as an envelope token rather than plaintext.
const Prefix = "encrypted:"

const (
	ephemeralPubLen = 33
	nonceLen        = 12
	gcmTagLen       = 16
	minTokenLen     = ephemeralPubLen + nonceLen + gcmTagLen
	aesKeyLen       = 32
)

// hkdfInfo is part of the wire contract: changing it breaks decryption of
// every token already issued.
var hkdfInfo = []byte("dotenvx-ecies-aes")

// Encrypt seals plaintext to recipientPublicHex and returns an
// "encrypted:"-prefixed, standard-base64 token. Each call uses a fresh
// ephemeral keypair and nonce, so encrypting the same plaintext twice
// yields different tokens.
func Encrypt(plaintext []byte, recipientPublicHex string) (string, error) {
	recipientPub, err := keypair.FromPublicHex(recipientPublicHex)
	if err != nil {
		return "", err
	}

	ephemeral, err := keypair.Generate()
	if err != nil {
		return "", dotenverr.EncryptionFailed("failed to generate ephemeral keypair", err)
	}

	shared := keypair.ECDH(ephemeral.Private(), recipientPub)
	aesKey, err := deriveAESKey(shared[:])
	if err != nil {
		return "", dotenverr.EncryptionFailed("HKDF expand failed", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", dotenverr.EncryptionFailed("failed to generate nonce", err)
	}

	gcm, err := newGCM(aesKey)
	if err != nil {
		return "", dotenverr.EncryptionFailed("failed to initialize AES-GCM", err)
	}
	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	combined := make([]byte, 0, ephemeralPubLen+nonceLen+len(sealed))
	combined = append(combined, ephemeral.Public().SerializeCompressed()...)
	combined = append(combined, nonce...)
	combined = append(combined, sealed...)

	return Prefix + base64.StdEncoding.EncodeToString(combined), nil
}

// Decrypt reverses Encrypt using recipientPrivateHex. If token does not
// carry the "encrypted:" prefix it is returned unchanged — callers rely on
// this identity pass-through to handle files that mix plaintext and
// ciphertext values.
func Decrypt(token string, recipientPrivateHex string) (string, error) {
	body, ok := trimPrefix(token)
	if !ok {
		return token, nil
	}

	combined, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return "", dotenverr.MalformedEncryptedData("", err)
	}
	if len(combined) < minTokenLen {
		return "", dotenverr.MalformedEncryptedData("", nil)
	}

	ephemeralPubBytes := combined[:ephemeralPubLen]
	nonce := combined[ephemeralPubLen : ephemeralPubLen+nonceLen]
	ciphertext := combined[ephemeralPubLen+nonceLen:]

	if ephemeralPubBytes[0] != 0x02 && ephemeralPubBytes[0] != 0x03 {
		return "", dotenverr.MalformedEncryptedData("", nil)
	}
	ephemeralPub, err := secp256k1.ParsePubKey(ephemeralPubBytes)
	if err != nil {
		return "", dotenverr.MalformedEncryptedData("", err)
	}

	recipient, err := keypair.FromPrivateHex(recipientPrivateHex)
	if err != nil {
		return "", err
	}

	shared := keypair.ECDH(recipient.Private(), ephemeralPub)
	aesKey, err := deriveAESKey(shared[:])
	if err != nil {
		return "", dotenverr.DecryptionFailed("", "", err)
	}

	gcm, err := newGCM(aesKey)
	if err != nil {
		return "", dotenverr.DecryptionFailed("", "", err)
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", dotenverr.DecryptionFailed("", "", err)
	}

	if !utf8.Valid(plaintext) {
		return "", dotenverr.DecryptionFailed("", "", nil)
	}
	return string(plaintext), nil
}

func trimPrefix(s string) (string, bool) {
	if len(s) < len(Prefix) || s[:len(Prefix)] != Prefix {
		return "", false
	}
	return s[len(Prefix):], true
}

func deriveAESKey(sharedSecret []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, sharedSecret, nil, hkdfInfo)
	key := make([]byte, aesKeyLen)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Package keypair generates and parses the secp256k1 keypairs that back
// the envelope encryption scheme: a 32-byte private scalar and its
// compressed 33-byte public point, interchanged as lowercase hex.
package keypair

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/fabianopinto/dotenvx/internal/dotenverr"
)

// PrivateHexLen is the length in hex characters of an exported private key.
const PrivateHexLen = 64

// PublicHexLen is the length in hex characters of an exported public key.
const PublicHexLen = 66

// KeyPair holds a secp256k1 private scalar and its compressed public point.
// It is immutable once constructed.
type KeyPair struct {
	priv *secp256k1.PrivateKey
	pub  *secp256k1.PublicKey
}

// Generate creates a new random keypair using a cryptographically secure
// source of randomness.
func Generate() (*KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, dotenverr.EncryptionFailed("failed to generate secp256k1 keypair", err)
	}
	return &KeyPair{priv: priv, pub: priv.PubKey()}, nil
}

// FromPrivateHex parses a 64-character hex private scalar and derives its
// public point. The scalar must be in [1, n-1] for the secp256k1 group
// order n.
func FromPrivateHex(s string) (*KeyPair, error) {
	if len(s) != PrivateHexLen {
		return nil, dotenverr.InvalidPrivateKey("private key must be 64 hex characters", nil)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, dotenverr.InvalidPrivateKey("private key is not valid hex", err)
	}

	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(raw)
	if overflow || scalar.IsZero() {
		return nil, dotenverr.InvalidPrivateKey("private key scalar is out of range", nil)
	}

	priv := secp256k1.NewPrivateKey(&scalar)
	return &KeyPair{priv: priv, pub: priv.PubKey()}, nil
}

// FromPublicHex parses a 66-character hex compressed public point,
// rejecting points at infinity and points not on the curve.
func FromPublicHex(s string) (*secp256k1.PublicKey, error) {
	if len(s) != PublicHexLen {
		return nil, dotenverr.InvalidPublicKey("public key must be 66 hex characters", nil)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, dotenverr.InvalidPublicKey("public key is not valid hex", err)
	}
	if raw[0] != 0x02 && raw[0] != 0x03 {
		return nil, dotenverr.InvalidPublicKey("compressed public key must start with 0x02 or 0x03", nil)
	}

	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return nil, dotenverr.InvalidPublicKey("public key is not a valid curve point", err)
	}
	return pub, nil
}

// PrivateHex returns the lowercase hex encoding of the private scalar.
func (k *KeyPair) PrivateHex() string {
	b := k.priv.Serialize()
	defer zero(b)
	return hex.EncodeToString(b)
}

// PublicHex returns the lowercase hex encoding of the compressed public point.
func (k *KeyPair) PublicHex() string {
	return hex.EncodeToString(k.pub.SerializeCompressed())
}

// Public returns the raw public point for cryptographic operations.
func (k *KeyPair) Public() *secp256k1.PublicKey { return k.pub }

// Private returns the raw private scalar for cryptographic operations.
func (k *KeyPair) Private() *secp256k1.PrivateKey { return k.priv }

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ECDH computes the shared secret between priv and pub following the
// libsecp256k1 convention: SHA-256 of the compressed serialization of the
// shared curve point e·P, NOT the raw x-coordinate. This is the wire
// contract for the envelope's key agreement step and must match
// byte-for-byte across implementations.
func ECDH(priv *secp256k1.PrivateKey, pub *secp256k1.PublicKey) [32]byte {
	var pubPoint, sharedPoint secp256k1.JacobianPoint
	pub.AsJacobian(&pubPoint)

	secp256k1.ScalarMultNonConst(&priv.Key, &pubPoint, &sharedPoint)
	sharedPoint.ToAffine()

	shared := secp256k1.NewPublicKey(&sharedPoint.X, &sharedPoint.Y)
	return sha256.Sum256(shared.SerializeCompressed())
}

package keys

import (
	"crypto/subtle"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/blake2b"
)

// SignatureSize is the length of a signature in bytes.
const SignatureSize = 64

// expand hashes the private key into the clamped signing scalar and the
// nonce prefix.
func (k PrivateKey) expand() (*edwards25519.Scalar, []byte) {
	digest := blake2b.Sum512(k[:])
	s, err := edwards25519.NewScalar().SetBytesWithClamping(digest[:32])
	if err != nil {
		// Only reachable for inputs that are not 32 bytes.
		panic(err)
	}
	prefix := make([]byte, 32)
	copy(prefix, digest[32:])
	return s, prefix
}

// Public returns the public key for k.
func (k PrivateKey) Public() PublicKey {
	s, _ := k.expand()
	var pub PublicKey
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(s).Bytes())
	return pub
}

// Sign produces a deterministic signature of msg.
func Sign(priv PrivateKey, msg []byte) [SignatureSize]byte {
	s, prefix := priv.expand()
	pub := priv.Public()

	r := hashToScalar(prefix, msg)
	R := new(edwards25519.Point).ScalarBaseMult(r).Bytes()

	k := hashToScalar(R, pub[:], msg)
	S := edwards25519.NewScalar().MultiplyAdd(k, s, r)

	var sig [SignatureSize]byte
	copy(sig[:32], R)
	copy(sig[32:], S.Bytes())
	return sig
}

// Verify reports whether sig is a valid signature of msg by pub.
func Verify(pub PublicKey, msg, sig []byte) bool {
	if len(sig) != SignatureSize || sig[63]&224 != 0 {
		return false
	}

	A, err := new(edwards25519.Point).SetBytes(pub[:])
	if err != nil {
		return false
	}

	S, err := edwards25519.NewScalar().SetCanonicalBytes(sig[32:])
	if err != nil {
		return false
	}

	k := hashToScalar(sig[:32], pub[:], msg)
	minusA := new(edwards25519.Point).Negate(A)
	R := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(k, minusA, S)

	return subtle.ConstantTimeCompare(R.Bytes(), sig[:32]) == 1
}

func hashToScalar(parts ...[]byte) *edwards25519.Scalar {
	h, _ := blake2b.New512(nil)
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		panic(err)
	}
	return s
}

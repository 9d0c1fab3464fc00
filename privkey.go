// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"crypto/rand"
	"fmt"
	"io"
)

// PrivKeyBytesLen defines the length in bytes of a serialized private key.
const PrivKeyBytesLen = 32

// maxKeyGenAttempts bounds the rejection sampling in GeneratePrivateKey.  A
// uniformly random 256-bit value is outside [1, N-1] with a probability of
// roughly 2^-128, so the bound is never reached with a working reader.
const maxKeyGenAttempts = 128

// PrivateKey provides facilities for working with secp256k1 private keys
// within this package and includes functionality such as serializing and
// parsing them as well as computing their associated public key.
//
// A PrivateKey is immutable.  The public key is computed once when the private
// key is created.
type PrivateKey struct {
	key *ModNScalar
	pub *PublicKey
}

// NewPrivateKey instantiates a new private key from a scalar.  The scalar must
// be in [1, N-1], otherwise ErrInvalidPrivateKey is returned.
func NewPrivateKey(key *ModNScalar) (*PrivateKey, error) {
	curve := S256()
	if key == nil || key.IsZero() || key.n.Cmp(curve.n) != 0 {
		return nil, makeError(ErrInvalidPrivateKey, "private key is not in [1, N-1]")
	}

	pt, err := curve.ScalarBaseMult(key.v)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key: key, pub: &PublicKey{point: pt}}, nil
}

// PrivKeyFromBytes returns a private key for the 32-byte big-endian value
// passed as a byte slice.  The value must be in [1, N-1], otherwise
// ErrInvalidPrivateKey is returned.
func PrivKeyFromBytes(privKeyBytes []byte) (*PrivateKey, error) {
	if len(privKeyBytes) != PrivKeyBytesLen {
		str := fmt.Sprintf("malformed private key: %d bytes instead of %d",
			len(privKeyBytes), PrivKeyBytesLen)
		return nil, makeError(ErrInvalidPrivateKey, str)
	}
	key, err := ParseNonZeroScalar(privKeyBytes)
	if err != nil {
		str := fmt.Sprintf("private key is not in [1, N-1]: %v", err)
		return nil, makeError(ErrInvalidPrivateKey, str)
	}
	return NewPrivateKey(key)
}

// GeneratePrivateKey returns a private key that is suitable for use with
// secp256k1 using bytes read from the provided reader.  The crypto/rand reader
// is used when rand is nil.  Candidates outside [1, N-1] are discarded and a
// fresh value is read, so the result is uniformly distributed when the reader
// is.
func GeneratePrivateKey(rand io.Reader) (*PrivateKey, error) {
	if rand == nil {
		rand = cryptoRandReader
	}

	var b [PrivKeyBytesLen]byte
	for i := 0; i < maxKeyGenAttempts; i++ {
		if _, err := io.ReadFull(rand, b[:]); err != nil {
			return nil, err
		}
		key, err := ParseNonZeroScalar(b[:])
		if err != nil {
			continue
		}
		return NewPrivateKey(key)
	}
	return nil, makeError(ErrInvalidPrivateKey, "unable to generate a private "+
		"key in [1, N-1]")
}

var cryptoRandReader = rand.Reader

// PubKey computes and returns the public key corresponding to this private key.
func (p *PrivateKey) PubKey() *PublicKey {
	return p.pub
}

// Key returns the private scalar.
func (p *PrivateKey) Key() *ModNScalar {
	return p.key
}

// Serialize returns the private key as a 256-bit big-endian binary-encoded
// number, padded to a length of 32 bytes.
func (p *PrivateKey) Serialize() []byte {
	return p.key.Bytes()
}

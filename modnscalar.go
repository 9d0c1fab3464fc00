// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"fmt"
	"math/big"
)

// ModNScalar is an immutable integer modulo the order of the base point of a
// curve.  Private keys, nonces and the R and S components of signatures are all
// ModNScalars.
//
// The zero value is not usable.  Scalars are created with NewModNScalar,
// ParseScalar, ParseNonZeroScalar or ScalarFromHash and are always fully
// reduced into [0, N-1].
type ModNScalar struct {
	v *big.Int // value in [0, N-1]
	n *big.Int // group order; shared and never mutated
}

// NewModNScalar returns v mod N for the secp256k1 group order N.  Any integer,
// including a negative one, is accepted.
func NewModNScalar(v *big.Int) *ModNScalar {
	return newModNScalar(v, S256().n)
}

// newModNScalar reduces v modulo n.  The order is retained by reference.
func newModNScalar(v, n *big.Int) *ModNScalar {
	return &ModNScalar{v: new(big.Int).Mod(v, n), n: n}
}

// ParseScalar interprets b as a 32-byte big-endian integer and returns it as a
// scalar.  Values that are not less than the group order are rejected with
// ErrInvalidScalarRange rather than silently reduced.
func ParseScalar(b []byte) (*ModNScalar, error) {
	return parseScalar(S256(), b)
}

// ParseNonZeroScalar is like ParseScalar but also rejects zero, so the result
// is in [1, N-1].
func ParseNonZeroScalar(b []byte) (*ModNScalar, error) {
	s, err := parseScalar(S256(), b)
	if err != nil {
		return nil, err
	}
	if s.IsZero() {
		return nil, makeError(ErrInvalidScalarRange, "scalar is zero")
	}
	return s, nil
}

func parseScalar(curve *CurveParams, b []byte) (*ModNScalar, error) {
	if width := curve.ScalarSize(); len(b) != width {
		str := fmt.Sprintf("malformed scalar: %d bytes instead of %d", len(b),
			width)
		return nil, makeError(ErrInvalidScalarRange, str)
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(curve.n) >= 0 {
		str := fmt.Sprintf("scalar %x is not less than the group order", b)
		return nil, makeError(ErrInvalidScalarRange, str)
	}
	return &ModNScalar{v: v, n: curve.n}, nil
}

// ScalarFromHash converts a message digest to the scalar e used by signing and
// verification.  The leftmost bits of the digest up to the bit length of N are
// interpreted as a big-endian integer and reduced modulo N, as described in
// section 4.1.3 of [SEC1].
func ScalarFromHash(hash []byte) *ModNScalar {
	return scalarFromHash(S256(), hash)
}

func scalarFromHash(curve *CurveParams, hash []byte) *ModNScalar {
	return newModNScalar(bits2int(hash, curve.n.BitLen()), curve.n)
}

// bits2int converts b to an integer holding at most qlen bits by discarding
// the rightmost bits, as defined by section 2.3.2 of RFC 6979.
func bits2int(b []byte, qlen int) *big.Int {
	v := new(big.Int).SetBytes(b)
	if blen := len(b) * 8; blen > qlen {
		v.Rsh(v, uint(blen-qlen))
	}
	return v
}

// checkOrder returns an error when other was reduced by a different order.
func (s *ModNScalar) checkOrder(other *ModNScalar) error {
	if s.n == other.n || s.n.Cmp(other.n) == 0 {
		return nil
	}
	str := fmt.Sprintf("scalars belong to different groups: %v and %v", s.n,
		other.n)
	return makeError(ErrModulusMismatch, str)
}

// Add returns s + other mod N.
func (s *ModNScalar) Add(other *ModNScalar) (*ModNScalar, error) {
	if err := s.checkOrder(other); err != nil {
		return nil, err
	}
	return s.add(other), nil
}

// Sub returns s - other mod N.
func (s *ModNScalar) Sub(other *ModNScalar) (*ModNScalar, error) {
	if err := s.checkOrder(other); err != nil {
		return nil, err
	}
	return s.add(other.Negate()), nil
}

// Mul returns s * other mod N.
func (s *ModNScalar) Mul(other *ModNScalar) (*ModNScalar, error) {
	if err := s.checkOrder(other); err != nil {
		return nil, err
	}
	return s.mul(other), nil
}

func (s *ModNScalar) add(other *ModNScalar) *ModNScalar {
	return newModNScalar(new(big.Int).Add(s.v, other.v), s.n)
}

func (s *ModNScalar) mul(other *ModNScalar) *ModNScalar {
	return newModNScalar(new(big.Int).Mul(s.v, other.v), s.n)
}

// Negate returns -s mod N.
func (s *ModNScalar) Negate() *ModNScalar {
	return newModNScalar(new(big.Int).Neg(s.v), s.n)
}

// Inverse returns the multiplicative inverse of s modulo N.  Zero has no
// inverse and ErrNotInvertible is returned for it.
func (s *ModNScalar) Inverse() (*ModNScalar, error) {
	// The group order is prime, so the arithmetic of the field of integers
	// modulo N applies unchanged.
	inv, err := (&FieldElement{n: s.v, p: s.n}).Inverse()
	if err != nil {
		return nil, err
	}
	return &ModNScalar{v: inv.n, n: s.n}, nil
}

// IsZero returns whether or not the scalar is zero.
func (s *ModNScalar) IsZero() bool {
	return s.v.Sign() == 0
}

// IsOverHalfOrder returns whether or not the scalar exceeds the group order
// divided by 2.
func (s *ModNScalar) IsOverHalfOrder() bool {
	return s.v.Cmp(new(big.Int).Rsh(s.n, 1)) > 0
}

// Equals returns whether or not the two scalars have the same value modulo the
// same order.
func (s *ModNScalar) Equals(other *ModNScalar) bool {
	return s.v.Cmp(other.v) == 0 && s.n.Cmp(other.n) == 0
}

// Bytes returns the big-endian encoding of the scalar padded to the byte
// length of the group order.
func (s *ModNScalar) Bytes() []byte {
	return s.v.FillBytes(make([]byte, byteLen(s.n)))
}

// BigInt returns a copy of the value of the scalar.
func (s *ModNScalar) BigInt() *big.Int {
	return new(big.Int).Set(s.v)
}

// String returns the scalar as a human-readable hex string.
func (s ModNScalar) String() string {
	return fmt.Sprintf("%x", s.Bytes())
}

// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"fmt"
	"math/big"
)

// References:
//   [HAC]: Handbook of Applied Cryptography Menezes, van Oorschot, Vanstone.
//     http://cacr.uwaterloo.ca/hac/

// All elliptic curve operations are done in a finite field characterized by a
// prime modulus.  This code deliberately uses arbitrary-precision integers and
// keeps the modulus alongside every element, rather than specializing the
// representation for a single prime, so the exact same code paths serve both
// secp256k1 and the small curves used to test the group law exhaustively.
//
// Every element is fully reduced into [0, p-1] as soon as it is created and
// elements are never mutated after construction, so the result of every
// operation is always in canonical form and may be shared freely.

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
)

// FieldElement is an immutable element of the prime field of integers modulo
// p.
type FieldElement struct {
	n *big.Int // value in [0, p-1]
	p *big.Int // modulus; shared between elements and never mutated
}

// NewFieldElement returns the element v mod p.  The value is reduced, so any
// integer, including a negative one, is accepted.  The modulus must be greater
// than one and is expected to be prime for inversion and square roots to be
// meaningful.
func NewFieldElement(v, p *big.Int) (*FieldElement, error) {
	if p == nil || p.Cmp(bigOne) <= 0 {
		str := fmt.Sprintf("modulus %v must be greater than one", p)
		return nil, makeError(ErrInvalidModulus, str)
	}
	if v == nil {
		v = bigZero
	}
	return newFieldElement(v, new(big.Int).Set(p)), nil
}

// newFieldElement reduces v into the field described by p.  The modulus is
// retained by reference, so callers must pass a value that is never mutated.
func newFieldElement(v, p *big.Int) *FieldElement {
	// Mod implements Euclidean modulus, so the result is always non-negative
	// for a positive modulus.
	return &FieldElement{n: new(big.Int).Mod(v, p), p: p}
}

// FieldElementFromBytes interprets b as a big-endian integer and returns the
// corresponding element of the field described by p.  The encoding must be
// exactly as wide as the modulus and the value must be less than the modulus.
func FieldElementFromBytes(b []byte, p *big.Int) (*FieldElement, error) {
	if p == nil || p.Cmp(bigOne) <= 0 {
		str := fmt.Sprintf("modulus %v must be greater than one", p)
		return nil, makeError(ErrInvalidModulus, str)
	}
	width := byteLen(p)
	if len(b) != width {
		str := fmt.Sprintf("malformed field element: %d bytes instead of %d",
			len(b), width)
		return nil, makeError(ErrFieldOverflow, str)
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(p) >= 0 {
		str := fmt.Sprintf("field element %x is not less than the modulus", b)
		return nil, makeError(ErrFieldOverflow, str)
	}
	return &FieldElement{n: v, p: new(big.Int).Set(p)}, nil
}

// byteLen returns the number of bytes needed to encode values below p.
func byteLen(p *big.Int) int {
	return (p.BitLen() + 7) / 8
}

// checkField returns an error when other does not belong to the same field.
func (f *FieldElement) checkField(other *FieldElement) error {
	if f.p == other.p || f.p.Cmp(other.p) == 0 {
		return nil
	}
	str := fmt.Sprintf("elements belong to different fields: %v and %v",
		f.p, other.p)
	return makeError(ErrModulusMismatch, str)
}

// Value returns a copy of the reduced value of the element.
func (f *FieldElement) Value() *big.Int {
	return new(big.Int).Set(f.n)
}

// Modulus returns a copy of the modulus of the field the element belongs to.
func (f *FieldElement) Modulus() *big.Int {
	return new(big.Int).Set(f.p)
}

// String returns the element as a human-readable hex string.
func (f FieldElement) String() string {
	return fmt.Sprintf("%x", f.Bytes())
}

// Bytes returns the big-endian encoding of the element padded to the byte
// length of the modulus.
func (f *FieldElement) Bytes() []byte {
	return f.n.FillBytes(make([]byte, byteLen(f.p)))
}

// IsZero returns whether or not the element is the additive identity.
func (f *FieldElement) IsZero() bool {
	return f.n.Sign() == 0
}

// IsOdd returns whether or not the reduced value of the element is odd.
func (f *FieldElement) IsOdd() bool {
	return f.n.Bit(0) == 1
}

// Equals returns whether or not the two elements belong to the same field and
// have the same value.
func (f *FieldElement) Equals(other *FieldElement) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.n.Cmp(other.n) == 0 && f.p.Cmp(other.p) == 0
}

// Add returns f + other.
func (f *FieldElement) Add(other *FieldElement) (*FieldElement, error) {
	if err := f.checkField(other); err != nil {
		return nil, err
	}
	return f.add(other), nil
}

// Sub returns f - other.
func (f *FieldElement) Sub(other *FieldElement) (*FieldElement, error) {
	if err := f.checkField(other); err != nil {
		return nil, err
	}
	return f.sub(other), nil
}

// Mul returns f * other.
func (f *FieldElement) Mul(other *FieldElement) (*FieldElement, error) {
	if err := f.checkField(other); err != nil {
		return nil, err
	}
	return f.mul(other), nil
}

// The unexported arithmetic below skips the field check.  It is only used on
// elements that are known to come from the same curve.

func (f *FieldElement) add(other *FieldElement) *FieldElement {
	return newFieldElement(new(big.Int).Add(f.n, other.n), f.p)
}

func (f *FieldElement) sub(other *FieldElement) *FieldElement {
	return newFieldElement(new(big.Int).Sub(f.n, other.n), f.p)
}

func (f *FieldElement) mul(other *FieldElement) *FieldElement {
	return newFieldElement(new(big.Int).Mul(f.n, other.n), f.p)
}

func (f *FieldElement) mulInt(k int64) *FieldElement {
	return newFieldElement(new(big.Int).Mul(f.n, big.NewInt(k)), f.p)
}

// Negate returns -f.
func (f *FieldElement) Negate() *FieldElement {
	return newFieldElement(new(big.Int).Neg(f.n), f.p)
}

// Square returns f².
func (f *FieldElement) Square() *FieldElement {
	return f.mul(f)
}

// Exp returns f^e using left-to-right square-and-multiply.  A negative
// exponent raises the inverse of f, so it fails with ErrNotInvertible when f
// is zero.
func (f *FieldElement) Exp(e *big.Int) (*FieldElement, error) {
	base := f
	if e.Sign() < 0 {
		inv, err := f.Inverse()
		if err != nil {
			return nil, err
		}
		base = inv
		e = new(big.Int).Neg(e)
	}

	result := new(big.Int).Mod(bigOne, f.p)
	for i := e.BitLen() - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, f.p)
		if e.Bit(i) == 1 {
			result.Mul(result, base.n)
			result.Mod(result, f.p)
		}
	}
	return &FieldElement{n: result, p: f.p}, nil
}

// Inverse returns the multiplicative inverse of f computed with the extended
// Euclidean algorithm (algorithm 2.107 in [HAC]).  The inverse of zero does not
// exist and ErrNotInvertible is returned for it.
func (f *FieldElement) Inverse() (*FieldElement, error) {
	if f.IsZero() {
		return nil, makeError(ErrNotInvertible, "zero has no multiplicative inverse")
	}

	// Invariant: t0*f = r0 and t1*f = r1 (mod p).
	r0, r1 := new(big.Int).Set(f.p), new(big.Int).Set(f.n)
	t0, t1 := new(big.Int), big.NewInt(1)
	q := new(big.Int)
	for r1.Sign() != 0 {
		q.Quo(r0, r1)
		r2 := new(big.Int).Mul(q, r1)
		r2.Sub(r0, r2)
		r0, r1 = r1, r2

		t2 := new(big.Int).Mul(q, t1)
		t2.Sub(t0, t2)
		t0, t1 = t1, t2
	}
	if r0.Cmp(bigOne) != 0 {
		str := fmt.Sprintf("%v shares the factor %v with the modulus", f.n, r0)
		return nil, makeError(ErrNotInvertible, str)
	}
	return newFieldElement(t0, f.p), nil
}

// InverseFermat returns the multiplicative inverse of f computed as f^(p-2)
// per Fermat's little theorem.  It requires a prime modulus and yields the same
// value as Inverse.
func (f *FieldElement) InverseFermat() (*FieldElement, error) {
	if f.IsZero() {
		return nil, makeError(ErrNotInvertible, "zero has no multiplicative inverse")
	}
	return f.Exp(new(big.Int).Sub(f.p, bigTwo))
}

// Sqrt returns a square root of f along with whether or not one exists.  When
// p ≡ 3 (mod 4) the root is f^((p+1)/4), otherwise the Tonelli-Shanks
// algorithm is used.  Which of the two roots is returned is unspecified.
func (f *FieldElement) Sqrt() (*FieldElement, bool) {
	if f.IsZero() {
		return f, true
	}

	var root *big.Int
	switch {
	case f.p.Cmp(bigTwo) == 0:
		root = new(big.Int).Set(f.n)

	case f.p.Bit(0) == 0:
		return nil, false

	case f.p.Bit(1) == 1:
		e := new(big.Int).Add(f.p, bigOne)
		e.Rsh(e, 2)
		r, _ := f.Exp(e)
		root = r.n

	default:
		root = new(big.Int).ModSqrt(f.n, f.p)
		if root == nil {
			return nil, false
		}
	}

	candidate := &FieldElement{n: root, p: f.p}
	if !candidate.Square().Equals(f) {
		return nil, false
	}
	return candidate, true
}

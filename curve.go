// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"fmt"
	"math/big"
	"sync"
)

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf

// CurveParams houses the domain parameters of a short Weierstrass curve
// y² = x³ + ax + b over the prime field of order p, along with the generator G
// of a subgroup of prime order n and the cofactor h.
//
// A CurveParams value is immutable once constructed.  Every accessor returns
// either a copy or an immutable value, so a single instance may be shared by
// any number of goroutines.
type CurveParams struct {
	name      string
	p         *big.Int
	n         *big.Int
	h         *big.Int
	halfOrder *big.Int
	a, b      *FieldElement
	g         *Point
}

// NewCurveParams returns the parameters for the curve y² = x³ + ax + b over
// the field of integers modulo p with the base point (gx, gy) of order n and
// cofactor h.  The base point must lie on the curve.
func NewCurveParams(name string, p, a, b, gx, gy, n, h *big.Int) (*CurveParams, error) {
	if p == nil || p.Cmp(bigTwo) <= 0 {
		str := fmt.Sprintf("field modulus %v must be an odd prime", p)
		return nil, makeError(ErrInvalidModulus, str)
	}
	if n == nil || n.Cmp(bigOne) <= 0 {
		str := fmt.Sprintf("group order %v must be greater than one", n)
		return nil, makeError(ErrInvalidModulus, str)
	}
	if h == nil || h.Sign() <= 0 {
		h = bigOne
	}

	prime := new(big.Int).Set(p)
	curve := &CurveParams{
		name:      name,
		p:         prime,
		n:         new(big.Int).Set(n),
		h:         new(big.Int).Set(h),
		halfOrder: new(big.Int).Rsh(n, 1),
		a:         newFieldElement(a, prime),
		b:         newFieldElement(b, prime),
	}

	g, err := curve.NewPoint(gx, gy)
	if err != nil {
		return nil, err
	}
	curve.g = g
	return curve, nil
}

// Name returns the canonical name of the curve.
func (c *CurveParams) Name() string {
	return c.name
}

// P returns a copy of the field modulus.
func (c *CurveParams) P() *big.Int {
	return new(big.Int).Set(c.p)
}

// N returns a copy of the order of the base point.
func (c *CurveParams) N() *big.Int {
	return new(big.Int).Set(c.n)
}

// H returns a copy of the cofactor.
func (c *CurveParams) H() *big.Int {
	return new(big.Int).Set(c.h)
}

// HalfOrder returns a copy of floor(N/2), the largest S value of a canonical
// signature.
func (c *CurveParams) HalfOrder() *big.Int {
	return new(big.Int).Set(c.halfOrder)
}

// A returns the linear coefficient of the curve equation.
func (c *CurveParams) A() *FieldElement {
	return c.a
}

// B returns the constant coefficient of the curve equation.
func (c *CurveParams) B() *FieldElement {
	return c.b
}

// G returns the base point.
func (c *CurveParams) G() *Point {
	return c.g
}

// BitSize returns the bit length of the field modulus.
func (c *CurveParams) BitSize() int {
	return c.p.BitLen()
}

// ByteSize returns the width in bytes of an encoded field element.
func (c *CurveParams) ByteSize() int {
	return byteLen(c.p)
}

// ScalarSize returns the width in bytes of an encoded scalar.
func (c *CurveParams) ScalarSize() int {
	return byteLen(c.n)
}

// fromHex converts the passed hex string into a big integer pointer and will
// panic if there is an error.  This is only provided for the hard-coded
// constants so errors in the source code can be detected.  It will only (and
// must only) be called for initialization purposes.
func fromHex(s string) *big.Int {
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}

var (
	initonce  sync.Once
	secp256k1 *CurveParams
)

func initS256() {
	// See [SECG] section 2.4.1.
	curve, err := NewCurveParams("secp256k1",
		fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
		big.NewInt(0),
		big.NewInt(7),
		fromHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		fromHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
		fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
		big.NewInt(1))
	if err != nil {
		panic("invalid secp256k1 parameters: " + err.Error())
	}
	secp256k1 = curve
}

// S256 returns the parameters of the secp256k1 curve.  They are initialized
// exactly once on first use and are read-only afterwards.
func S256() *CurveParams {
	initonce.Do(initS256)
	return secp256k1
}

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
//   [GECC]: Guide to Elliptic Curve Cryptography (Hankerson, Menezes, Vanstone)
//
//   [SEC1]: Elliptic Curve Cryptography (May 31, 2009, Version 2.0)
//     https://www.secg.org/sec1-v2.pdf

// All point arithmetic is done in affine coordinates.  That costs a field
// inversion per addition, which is far slower than working in Jacobian
// projective space, but it keeps every intermediate value a plain point on the
// curve and the formulas a direct transcription of the group law.

const (
	// PubKeyFormatCompressed is the format byte of a compressed point whose y
	// coordinate is even.  An odd y is indicated by PubKeyFormatCompressed+1.
	PubKeyFormatCompressed byte = 0x02

	// PubKeyFormatUncompressed is the format byte of an uncompressed point.
	PubKeyFormatUncompressed byte = 0x04

	// pointFormatInfinity is the single byte encoding of the point at
	// infinity per section 2.3.3 of [SEC1].
	pointFormatInfinity byte = 0x00
)

// Point is an immutable element of the group of points on a curve.  It is
// either the point at infinity, which is the group identity, or an affine
// point (x, y).
type Point struct {
	x, y     *FieldElement
	infinity bool
}

// Infinity returns the point at infinity.
func Infinity() *Point {
	return &Point{infinity: true}
}

// IsInfinity returns whether or not the point is the point at infinity.
func (pt *Point) IsInfinity() bool {
	return pt.infinity
}

// X returns the x coordinate of an affine point and nil for the point at
// infinity.
func (pt *Point) X() *FieldElement {
	return pt.x
}

// Y returns the y coordinate of an affine point and nil for the point at
// infinity.
func (pt *Point) Y() *FieldElement {
	return pt.y
}

// Equals returns whether or not the two points are the same.
func (pt *Point) Equals(other *Point) bool {
	if pt.infinity || other.infinity {
		return pt.infinity == other.infinity
	}
	return pt.x.Equals(other.x) && pt.y.Equals(other.y)
}

// String returns the point as a human-readable string.
func (pt Point) String() string {
	if pt.infinity {
		return "(infinity)"
	}
	return fmt.Sprintf("(%v, %v)", pt.x, pt.y)
}

// SerializeCompressed serializes the point in the 33-byte compressed format
// for secp256k1: 0x02 or 0x03 depending on the oddness of y, followed by x.
// The point at infinity is serialized as the single byte 0x00.
func (pt *Point) SerializeCompressed() []byte {
	if pt.infinity {
		return []byte{pointFormatInfinity}
	}
	format := PubKeyFormatCompressed
	if pt.y.IsOdd() {
		format |= 0x1
	}
	return append([]byte{format}, pt.x.Bytes()...)
}

// SerializeUncompressed serializes the point in the 65-byte uncompressed
// format for secp256k1: 0x04 followed by x and y.  The point at infinity is
// serialized as the single byte 0x00.
func (pt *Point) SerializeUncompressed() []byte {
	if pt.infinity {
		return []byte{pointFormatInfinity}
	}
	b := make([]byte, 0, 1+2*byteLen(pt.x.p))
	b = append(b, PubKeyFormatUncompressed)
	b = append(b, pt.x.Bytes()...)
	return append(b, pt.y.Bytes()...)
}

// belongs returns an error when the point is missing a coordinate or has
// coordinates from a field other than the one of the curve.
func (c *CurveParams) belongs(pt *Point) error {
	if pt == nil {
		return makeError(ErrPointNotOnCurve, "missing point")
	}
	if pt.infinity {
		return nil
	}
	if pt.x == nil || pt.y == nil {
		return makeError(ErrPointNotOnCurve, "missing point coordinate")
	}
	if err := c.a.checkField(pt.x); err != nil {
		return err
	}
	return c.a.checkField(pt.y)
}

// polynomial returns x³ + ax + b.
func (c *CurveParams) polynomial(x *FieldElement) *FieldElement {
	return x.Square().add(c.a).mul(x).add(c.b)
}

// NewPoint returns the affine point (x, y) after making sure the coordinates
// are field elements and satisfy the curve equation.
func (c *CurveParams) NewPoint(x, y *big.Int) (*Point, error) {
	if x == nil || y == nil {
		return nil, makeError(ErrPointNotOnCurve, "missing point coordinate")
	}
	if x.Sign() < 0 || x.Cmp(c.p) >= 0 || y.Sign() < 0 || y.Cmp(c.p) >= 0 {
		str := fmt.Sprintf("coordinates (%x, %x) exceed the field size", x, y)
		return nil, makeError(ErrFieldOverflow, str)
	}
	pt := &Point{x: newFieldElement(x, c.p), y: newFieldElement(y, c.p)}
	if !c.IsOnCurve(pt) {
		str := fmt.Sprintf("point %v is not on the curve", pt)
		return nil, makeError(ErrPointNotOnCurve, str)
	}
	return pt, nil
}

// IsOnCurve returns whether or not the point satisfies y² = x³ + ax + b.  The
// point at infinity is a member of every curve group and is reported as on the
// curve; callers that must reject it check IsInfinity separately.
func (c *CurveParams) IsOnCurve(pt *Point) bool {
	if pt != nil && pt.infinity {
		return true
	}
	if c.belongs(pt) != nil {
		return false
	}
	return pt.y.Square().Equals(c.polynomial(pt.x))
}

// Negate returns -P, the reflection of P across the x axis.
func (c *CurveParams) Negate(pt *Point) *Point {
	if pt.infinity {
		return pt
	}
	return &Point{x: pt.x, y: pt.y.Negate()}
}

// Add returns P + Q.
func (c *CurveParams) Add(p1, p2 *Point) (*Point, error) {
	if err := c.belongs(p1); err != nil {
		return nil, err
	}
	if err := c.belongs(p2); err != nil {
		return nil, err
	}
	return c.add(p1, p2)
}

// Double returns 2P.
func (c *CurveParams) Double(pt *Point) (*Point, error) {
	if err := c.belongs(pt); err != nil {
		return nil, err
	}
	return c.double(pt)
}

// add implements the chord rule of algorithm 3.5 in [GECC] without checking
// that the points belong to the curve's field.
func (c *CurveParams) add(p1, p2 *Point) (*Point, error) {
	// ∞ + Q = Q and P + ∞ = P.
	if p1.infinity {
		return p2, nil
	}
	if p2.infinity {
		return p1, nil
	}

	// Equal x coordinates mean either the same point, which is a doubling,
	// or a point and its negation, whose chord is vertical.
	if p1.x.Equals(p2.x) {
		if p1.y.Equals(p2.y) {
			return c.double(p1)
		}
		return Infinity(), nil
	}

	// λ = (y2 - y1) / (x2 - x1)
	// x3 = λ² - x1 - x2
	// y3 = λ(x1 - x3) - y1
	den, err := p2.x.sub(p1.x).Inverse()
	if err != nil {
		return nil, err
	}
	lambda := p2.y.sub(p1.y).mul(den)
	x3 := lambda.Square().sub(p1.x).sub(p2.x)
	y3 := lambda.mul(p1.x.sub(x3)).sub(p1.y)
	return &Point{x: x3, y: y3}, nil
}

// double implements the tangent rule of algorithm 3.5 in [GECC] without
// checking that the point belongs to the curve's field.
func (c *CurveParams) double(pt *Point) (*Point, error) {
	if pt.infinity {
		return pt, nil
	}

	// The tangent is vertical when 2y = 0, so the result is ∞.
	twoY := pt.y.mulInt(2)
	if twoY.IsZero() {
		return Infinity(), nil
	}

	// λ = (3x² + a) / 2y
	// x3 = λ² - 2x
	// y3 = λ(x - x3) - y
	den, err := twoY.Inverse()
	if err != nil {
		return nil, err
	}
	lambda := pt.x.Square().mulInt(3).add(c.a).mul(den)
	x3 := lambda.Square().sub(pt.x.mulInt(2))
	y3 := lambda.mul(pt.x.sub(x3)).sub(pt.y)
	return &Point{x: x3, y: y3}, nil
}

// MultStrategy selects the algorithm used for scalar multiplication.  Every
// strategy computes the same result.  None of them runs in constant time; the
// strategy is the seam behind which a side-channel resistant implementation
// would be plugged in.
type MultStrategy int

const (
	// DoubleAndAdd is the left-to-right binary method.
	DoubleAndAdd MultStrategy = iota

	// MontgomeryLadder performs one addition and one doubling per bit
	// regardless of its value.
	MontgomeryLadder
)

// String returns the MultStrategy as a human-readable name.
func (s MultStrategy) String() string {
	switch s {
	case DoubleAndAdd:
		return "DoubleAndAdd"
	case MontgomeryLadder:
		return "MontgomeryLadder"
	}
	return fmt.Sprintf("Unknown MultStrategy (%d)", int(s))
}

// ScalarMult returns kP using the DoubleAndAdd strategy.
func (c *CurveParams) ScalarMult(k *big.Int, pt *Point) (*Point, error) {
	return c.ScalarMultWith(DoubleAndAdd, k, pt)
}

// ScalarBaseMult returns kG.
func (c *CurveParams) ScalarBaseMult(k *big.Int) (*Point, error) {
	return c.ScalarMultWith(DoubleAndAdd, k, c.g)
}

// ScalarMultWith returns kP using the provided strategy.  A negative k
// multiplies -P by |k|.  The scalar is not reduced, so it may be any integer.
func (c *CurveParams) ScalarMultWith(strategy MultStrategy, k *big.Int, pt *Point) (*Point, error) {
	if err := c.belongs(pt); err != nil {
		return nil, err
	}

	// 0P = ∞ and k∞ = ∞.
	if k.Sign() == 0 || pt.infinity {
		return Infinity(), nil
	}
	if k.Sign() < 0 {
		k = new(big.Int).Neg(k)
		pt = c.Negate(pt)
	}

	switch strategy {
	case DoubleAndAdd:
		return c.doubleAndAdd(k, pt)
	case MontgomeryLadder:
		return c.montgomeryLadder(k, pt)
	}
	str := fmt.Sprintf("unknown scalar multiplication strategy %v", strategy)
	return nil, makeError(ErrInvalidInput, str)
}

// doubleAndAdd implements algorithm 3.27 in [GECC].
func (c *CurveParams) doubleAndAdd(k *big.Int, pt *Point) (*Point, error) {
	q := Infinity()
	var err error
	for i := k.BitLen() - 1; i >= 0; i-- {
		if q, err = c.double(q); err != nil {
			return nil, err
		}
		if k.Bit(i) == 1 {
			if q, err = c.add(q, pt); err != nil {
				return nil, err
			}
		}
	}
	return q, nil
}

// montgomeryLadder keeps the invariant r1 - r0 = P while scanning the bits of
// k from the most significant one.
func (c *CurveParams) montgomeryLadder(k *big.Int, pt *Point) (*Point, error) {
	r0, r1 := Infinity(), pt
	for i := k.BitLen() - 1; i >= 0; i-- {
		sum, err := c.add(r0, r1)
		if err != nil {
			return nil, err
		}
		if k.Bit(i) == 0 {
			if r0, err = c.double(r0); err != nil {
				return nil, err
			}
			r1 = sum
		} else {
			if r1, err = c.double(r1); err != nil {
				return nil, err
			}
			r0 = sum
		}
	}
	return r0, nil
}

// ParsePoint parses a point encoded in the compressed, uncompressed or
// infinity format of section 2.3.4 of [SEC1].  Compressed points are
// decompressed, and every affine point is verified to lie on the curve.
func (c *CurveParams) ParsePoint(b []byte) (*Point, error) {
	if len(b) == 0 {
		return nil, makeError(ErrInvalidPointEncoding, "empty point encoding")
	}

	width := c.ByteSize()
	switch format := b[0]; format {
	case pointFormatInfinity:
		if len(b) != 1 {
			str := fmt.Sprintf("malformed point at infinity: %d bytes", len(b))
			return nil, makeError(ErrInvalidPointEncoding, str)
		}
		return Infinity(), nil

	case PubKeyFormatCompressed, PubKeyFormatCompressed | 0x1:
		if len(b) != 1+width {
			str := fmt.Sprintf("malformed compressed point: %d bytes instead "+
				"of %d", len(b), 1+width)
			return nil, makeError(ErrInvalidPointEncoding, str)
		}
		x, err := FieldElementFromBytes(b[1:], c.p)
		if err != nil {
			str := fmt.Sprintf("invalid x coordinate: %v", err)
			return nil, makeError(ErrInvalidPointEncoding, str)
		}
		return c.decompress(x, format == PubKeyFormatCompressed|0x1)

	case PubKeyFormatUncompressed:
		if len(b) != 1+2*width {
			str := fmt.Sprintf("malformed uncompressed point: %d bytes "+
				"instead of %d", len(b), 1+2*width)
			return nil, makeError(ErrInvalidPointEncoding, str)
		}
		x, err := FieldElementFromBytes(b[1:1+width], c.p)
		if err != nil {
			str := fmt.Sprintf("invalid x coordinate: %v", err)
			return nil, makeError(ErrInvalidPointEncoding, str)
		}
		y, err := FieldElementFromBytes(b[1+width:], c.p)
		if err != nil {
			str := fmt.Sprintf("invalid y coordinate: %v", err)
			return nil, makeError(ErrInvalidPointEncoding, str)
		}
		pt := &Point{x: newFieldElement(x.n, c.p), y: newFieldElement(y.n, c.p)}
		if !c.IsOnCurve(pt) {
			str := fmt.Sprintf("point %v is not on the curve", pt)
			return nil, makeError(ErrPointNotOnCurve, str)
		}
		return pt, nil
	}

	str := fmt.Sprintf("unknown point format byte %#02x", b[0])
	return nil, makeError(ErrInvalidPointEncoding, str)
}

// decompress returns the point with the given x coordinate whose y coordinate
// has the requested oddness.
func (c *CurveParams) decompress(x *FieldElement, odd bool) (*Point, error) {
	x = newFieldElement(x.n, c.p)
	y, ok := c.polynomial(x).Sqrt()
	if !ok {
		str := fmt.Sprintf("x coordinate %v is not on the curve", x)
		return nil, makeError(ErrPointNotOnCurve, str)
	}
	if y.IsOdd() != odd {
		y = y.Negate()
	}
	// y = 0 has no odd counterpart.
	if y.IsOdd() != odd {
		str := fmt.Sprintf("x coordinate %v has no y of the requested "+
			"oddness", x)
		return nil, makeError(ErrPointNotOnCurve, str)
	}
	return &Point{x: x, y: y}, nil
}

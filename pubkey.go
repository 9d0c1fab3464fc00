// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"errors"
	"fmt"
	"math/big"
)

const (
	// PubKeyBytesLenCompressed is the number of bytes of a serialized
	// compressed public key.
	PubKeyBytesLenCompressed = 33

	// PubKeyBytesLenUncompressed is the number of bytes of a serialized
	// uncompressed public key.
	PubKeyBytesLenUncompressed = 65
)

// PublicKey provides facilities for efficiently working with secp256k1 public
// keys within this package and includes functions to serialize in both
// uncompressed and compressed SEC (Standards for Efficient Cryptography)
// formats.
//
// A PublicKey always holds an affine point on secp256k1.  It is never the
// point at infinity.
type PublicKey struct {
	point *Point
}

// NewPublicKey instantiates a new public key from the provided point.  The
// point must lie on secp256k1 and must not be the point at infinity.
func NewPublicKey(pt *Point) (*PublicKey, error) {
	if pt == nil || pt.IsInfinity() {
		return nil, makeError(ErrInvalidPublicKey, "public key is the point at "+
			"infinity")
	}
	if !S256().IsOnCurve(pt) {
		str := fmt.Sprintf("public key %v is not on the secp256k1 curve", pt)
		return nil, makeError(ErrInvalidPublicKey, str)
	}
	return &PublicKey{point: pt}, nil
}

// ParsePubKey parses a secp256k1 public key encoded according to the format
// specified by ANSI X9.62-1998, which means it is also compatible with the
// SEC (Standards for Efficient Cryptography) specification which is a subset
// of the former.  In other words, it supports the uncompressed and compressed
// formats as follows:
//
// Compressed:
//
//	<format byte = 0x02/0x03><32-byte X coordinate>
//
// Uncompressed:
//
//	<format byte = 0x04><32-byte X coordinate><32-byte Y coordinate>
//
// NOTE: The point at infinity and the hybrid formats are rejected.  Every
// failure is reported as ErrInvalidPublicKey with the underlying reason in the
// description.
func ParsePubKey(serialized []byte) (*PublicKey, error) {
	switch len(serialized) {
	case PubKeyBytesLenCompressed, PubKeyBytesLenUncompressed:
	default:
		str := fmt.Sprintf("malformed public key: invalid length: %d",
			len(serialized))
		return nil, makeError(ErrInvalidPublicKey, str)
	}

	pt, err := S256().ParsePoint(serialized)
	if err != nil {
		var kerr Error
		if errors.As(err, &kerr) {
			err = errors.New(kerr.Description)
		}
		str := fmt.Sprintf("malformed public key: %v", err)
		return nil, makeError(ErrInvalidPublicKey, str)
	}
	return NewPublicKey(pt)
}

// Point returns the curve point of the public key.
func (p *PublicKey) Point() *Point {
	return p.point
}

// X returns a copy of the x coordinate of the public key.
func (p *PublicKey) X() *big.Int {
	return p.point.x.Value()
}

// Y returns a copy of the y coordinate of the public key.
func (p *PublicKey) Y() *big.Int {
	return p.point.y.Value()
}

// SerializeUncompressed serializes a public key in the 65-byte uncompressed
// format.
func (p *PublicKey) SerializeUncompressed() []byte {
	return p.point.SerializeUncompressed()
}

// SerializeCompressed serializes a public key in the 33-byte compressed
// format.
func (p *PublicKey) SerializeCompressed() []byte {
	return p.point.SerializeCompressed()
}

// IsEqual compares this public key instance to the one passed, returning true
// if both public keys are equivalent.  A public key is equivalent to another,
// if they both have the same X and Y coordinates.
func (p *PublicKey) IsEqual(otherPubKey *PublicKey) bool {
	return p.point.Equals(otherPubKey.point)
}

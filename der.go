// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// SerializeDER returns the signature encoded with the Distinguished Encoding
// Rules of ISO/IEC 8825-1:
//
//	0x30 <length of whole message> <0x02> <length of R> <R> 0x02 <length of S> <S>
//
// This is the length-prefixed alternative to the canonical raw form produced
// by Serialize.
func (sig *Signature) SerializeDER() []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(sig.r.v)
		b.AddASN1BigInt(sig.s.v)
	})
	return b.BytesOrPanic()
}

// ParseDERSignature parses a signature in the DER format produced by
// SerializeDER.  Non-minimal lengths or integers, negative values, trailing
// bytes and any other deviation from strict DER are reported as
// ErrInvalidSignatureEncoding.  Components that are well encoded but not in
// [1, N-1] are reported as ErrInvalidSignature.
func ParseDERSignature(sig []byte) (*Signature, error) {
	var (
		inner cryptobyte.String
		r, s  = new(big.Int), new(big.Int)
	)

	input := cryptobyte.String(sig)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) {
		return nil, signatureError(ErrInvalidSignatureEncoding,
			"malformed signature: no valid DER sequence")
	}
	if !input.Empty() {
		str := fmt.Sprintf("malformed signature: %d trailing bytes", len(input))
		return nil, signatureError(ErrInvalidSignatureEncoding, str)
	}
	if !inner.ReadASN1Integer(r) {
		return nil, signatureError(ErrInvalidSignatureEncoding,
			"malformed signature: R is not a valid DER integer")
	}
	if !inner.ReadASN1Integer(s) {
		return nil, signatureError(ErrInvalidSignatureEncoding,
			"malformed signature: S is not a valid DER integer")
	}
	if !inner.Empty() {
		str := fmt.Sprintf("malformed signature: %d bytes after S", len(inner))
		return nil, signatureError(ErrInvalidSignatureEncoding, str)
	}
	if r.Sign() < 0 || s.Sign() < 0 {
		return nil, signatureError(ErrInvalidSignatureEncoding,
			"malformed signature: negative R or S")
	}

	n := S256().n
	if r.Sign() == 0 || r.Cmp(n) >= 0 {
		str := fmt.Sprintf("signature R %x is not in [1, N-1]", r)
		return nil, signatureError(ErrInvalidSignature, str)
	}
	if s.Sign() == 0 || s.Cmp(n) >= 0 {
		str := fmt.Sprintf("signature S %x is not in [1, N-1]", s)
		return nil, signatureError(ErrInvalidSignature, str)
	}
	return NewSignature(&ModNScalar{v: r, n: n}, &ModNScalar{v: s, n: n}), nil
}

// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"fmt"
)

// References:
//   [GECC]: Guide to Elliptic Curve Cryptography (Hankerson, Menezes, Vanstone)
//
//   [BIP62]: Dealing with malleability
//     https://github.com/bitcoin/bips/blob/master/bip-0062.mediawiki

// SignatureSize is the size of the canonical raw encoding of a signature: the
// 32-byte big-endian R followed by the 32-byte big-endian S.
const SignatureSize = 64

// Signature is a type representing an ECDSA signature.
type Signature struct {
	r *ModNScalar
	s *ModNScalar
}

// NewSignature instantiates a new signature given some r and s values.
func NewSignature(r, s *ModNScalar) *Signature {
	return &Signature{r: r, s: s}
}

// R returns the r value of the signature.
func (sig *Signature) R() *ModNScalar {
	return sig.r
}

// S returns the s value of the signature.
func (sig *Signature) S() *ModNScalar {
	return sig.s
}

// Serialize returns the signature in its canonical wire form:
//
//	<32-byte R><32-byte S>
//
// Each component is a big-endian integer left padded with zeros.
func (sig *Signature) Serialize() []byte {
	b := make([]byte, 0, SignatureSize)
	b = append(b, sig.r.Bytes()...)
	return append(b, sig.s.Bytes()...)
}

// ParseSignature parses a signature in the 64-byte canonical wire form
// produced by Serialize.  Both components must be in [1, N-1].  A wrong length
// is reported as ErrInvalidSignatureEncoding and an out of range component as
// ErrInvalidSignature.
//
// The S value may be greater than N/2.  Such a signature is rejected during
// verification only under the RejectHighS policy.
func ParseSignature(sig []byte) (*Signature, error) {
	if len(sig) != SignatureSize {
		str := fmt.Sprintf("malformed signature: %d bytes instead of %d",
			len(sig), SignatureSize)
		return nil, signatureError(ErrInvalidSignatureEncoding, str)
	}
	r, err := ParseNonZeroScalar(sig[:32])
	if err != nil {
		str := fmt.Sprintf("signature R is not in [1, N-1]: %v", err)
		return nil, signatureError(ErrInvalidSignature, str)
	}
	s, err := ParseNonZeroScalar(sig[32:])
	if err != nil {
		str := fmt.Sprintf("signature S is not in [1, N-1]: %v", err)
		return nil, signatureError(ErrInvalidSignature, str)
	}
	return NewSignature(r, s), nil
}

// IsEqual compares this Signature instance to the one passed, returning true if
// both Signatures are equivalent.  A signature is equivalent to another, if
// they both have the same scalar value for R and S.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	return sig.r.Equals(otherSig.r) && sig.s.Equals(otherSig.s)
}

// IsLowS returns whether or not S is at most N/2, which is the canonical form
// of [BIP62].
func (sig *Signature) IsLowS() bool {
	return !sig.s.IsOverHalfOrder()
}

// ToLowS returns the canonical form of the signature.  When S is greater than
// N/2 the returned signature carries N - S, which verifies for the same key and
// message.  Otherwise the signature itself is returned.
func (sig *Signature) ToLowS() *Signature {
	if sig.IsLowS() {
		return sig
	}
	return NewSignature(sig.r, sig.s.Negate())
}

// String returns the signature as the hex encoding of its canonical wire form.
func (sig Signature) String() string {
	return fmt.Sprintf("%x", sig.Serialize())
}

// Sign generates an ECDSA signature over the secp256k1 curve for the provided
// 32-byte hash (which should be the result of hashing a larger message) using
// the given private key.  The produced signature is deterministic (same message
// and same key yield the same signature) and canonical in accordance with
// [RFC6979] and [BIP62].
func Sign(key *PrivateKey, hash []byte) (*Signature, error) {
	sig, _, err := signRFC6979(key, hash)
	return sig, err
}

// signRFC6979 generates a deterministic ECDSA signature according to [RFC6979]
// and [BIP62] and returns it along with a public key recovery code for
// recovering the public key from the signature.
func signRFC6979(key *PrivateKey, hash []byte) (*Signature, byte, error) {
	// The algorithm for producing an ECDSA signature is given as algorithm 4.29
	// in [GECC].
	//
	// The following is a paraphrased version for reference:
	//
	// G = curve generator
	// N = curve order
	// d = private key
	// m = message
	// r, s = signature
	//
	// 1. Select random nonce k in [1, N-1]
	// 2. Compute kG
	// 3. r = kG.x mod N (kG.x is the x coordinate of the point kG)
	//    Repeat from step 1 if r = 0
	// 4. e = H(m)
	// 5. s = k^-1(e + dr) mod N
	//    Repeat from step 1 if s = 0
	// 6. Return (r,s)
	//
	// This is slightly modified here to conform to RFC6979 and BIP 62 as
	// follows:
	//
	// A. Instead of selecting a random nonce in step 1, use the next nonce of
	//    the RFC6979 stream parameterized by the private key and message
	// B. Negate s calculated in step 5 if it is > N/2
	if key == nil {
		return nil, 0, makeError(ErrInvalidPrivateKey, "missing private key")
	}
	curve := S256()
	gen, err := NewNonceGenerator(key.Serialize(), hash)
	if err != nil {
		return nil, 0, err
	}

	// Step 4.
	//
	// e = H(m) mod N
	e := scalarFromHash(curve, hash)

	for iteration := 0; iteration < maxSignIterations; iteration++ {
		// Step 1 with modification A.
		k, err := gen.Next()
		if err != nil {
			return nil, 0, err
		}

		// Step 2.
		//
		// Compute kG
		kG, err := curve.ScalarBaseMult(k.v)
		if err != nil {
			return nil, 0, err
		}
		if kG.IsInfinity() {
			continue
		}

		// Step 3.
		//
		// r = kG.x mod N
		// Repeat from step 1 if r = 0
		r := newModNScalar(kG.x.n, curve.n)
		if r.IsZero() {
			continue
		}

		// Bit 0 of the recovery code identifies the oddness of kG.y and bit 1
		// whether kG.x was reduced by N.
		var recoveryCode byte
		if kG.y.IsOdd() {
			recoveryCode |= pubKeyRecoveryCodeOddnessBit
		}
		if kG.x.n.Cmp(curve.n) >= 0 {
			recoveryCode |= pubKeyRecoveryCodeOverflowBit
		}

		// Step 5 with modification B.
		//
		// s = k^-1(e + dr) mod N
		// Repeat from step 1 if s = 0
		// s = -s if s > N/2
		kInv, err := k.Inverse()
		if err != nil {
			return nil, 0, err
		}
		s := key.key.mul(r).add(e).mul(kInv)
		if s.IsZero() {
			continue
		}
		if s.IsOverHalfOrder() {
			s = s.Negate()

			// -s corresponds to the point generated by -k, which has the
			// opposite oddness.
			recoveryCode ^= pubKeyRecoveryCodeOddnessBit
		}

		// Step 6.
		return NewSignature(r, s), recoveryCode, nil
	}

	str := fmt.Sprintf("no valid signature after %d nonces", maxSignIterations)
	return nil, 0, makeError(ErrNonceDerivationFailed, str)
}

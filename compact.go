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
//   [SEC1]: Elliptic Curve Cryptography (May 31, 2009, Version 2.0)
//     https://www.secg.org/sec1-v2.pdf

const (
	// CompactSigSize is the size of a compact signature.  It consists of a
	// compact signature recovery code byte followed by the R and S
	// components serialized as 32-byte big-endian values.
	CompactSigSize = 65

	// compactSigMagicOffset is a value used when creating the compact
	// signature recovery code inherited from Bitcoin and has no meaning, but
	// has been retained for compatibility.
	compactSigMagicOffset = 27

	// compactSigCompPubKey is a value used when creating the compact
	// signature recovery code to indicate the original public key was
	// compressed.
	compactSigCompPubKey = 4

	// pubKeyRecoveryCodeOddnessBit specifies the bit that indicates the
	// oddness of the y coordinate of the random point calculated when
	// creating a signature.
	pubKeyRecoveryCodeOddnessBit = 1 << 0

	// pubKeyRecoveryCodeOverflowBit specifies the bit that indicates the x
	// coordinate of the random point calculated when creating a signature was
	// greater than the order of the group.
	pubKeyRecoveryCodeOverflowBit = 1 << 1
)

// SignCompact produces a compact ECDSA signature over the secp256k1 curve for
// the provided 32-byte hash using the given private key.  The
// isCompressedKey parameter specifies if the produced signature should
// reference a compressed public key or not.
//
// Compact signature format:
//
//	<1-byte compact sig recovery code><32-byte R><32-byte S>
//
// The compact sig recovery code is the value 27 + public key recovery code + 4
// if the compact signature was created with a compressed public key.
func SignCompact(key *PrivateKey, hash []byte, isCompressedKey bool) ([]byte, error) {
	sig, pubKeyRecoveryCode, err := signRFC6979(key, hash)
	if err != nil {
		return nil, err
	}
	code := compactSigMagicOffset + pubKeyRecoveryCode
	if isCompressedKey {
		code += compactSigCompPubKey
	}

	b := make([]byte, 0, CompactSigSize)
	b = append(b, code)
	return append(b, sig.Serialize()...), nil
}

// RecoverCompact attempts to recover the secp256k1 public key from the
// provided compact signature and message hash.  It returns the recovered
// public key along with whether or not the original key was compressed.  The
// recovered key is guaranteed to verify the signature.
func RecoverCompact(signature, hash []byte) (*PublicKey, bool, error) {
	// The equation to recover a public key candidate from an ECDSA signature
	// per section 4.1.6 of [SEC1] is:
	//
	// Q = r^-1(sX - eG)
	//
	// where X is the random point whose x coordinate reduced modulo N is r.
	// The recovery code identifies which of the up to four candidates for X
	// was used:
	//
	// 1. Fail if r and s are not in [1, N-1]
	// 2. If the overflow bit is set: fail if r + N >= P, otherwise x = r + N
	// 3. y = sqrt(x^3 + 7) with the oddness of the oddness bit
	// 4. e = H(m) mod N, w = r^-1 mod N
	// 5. u1 = -(e * w) mod N, u2 = s * w mod N
	// 6. Q = u1G + u2X, fail if Q is the point at infinity
	if len(signature) != CompactSigSize {
		str := fmt.Sprintf("malformed compact signature: %d bytes instead of "+
			"%d", len(signature), CompactSigSize)
		return nil, false, signatureError(ErrInvalidSignatureEncoding, str)
	}

	const (
		minValidCode = compactSigMagicOffset
		maxValidCode = compactSigMagicOffset + compactSigCompPubKey + 3
	)
	sigRecoveryCode := signature[0]
	if sigRecoveryCode < minValidCode || sigRecoveryCode > maxValidCode {
		str := fmt.Sprintf("invalid compact signature recovery code %d",
			sigRecoveryCode)
		return nil, false, signatureError(ErrInvalidSignatureEncoding, str)
	}
	sigRecoveryCode -= compactSigMagicOffset
	wasCompressed := sigRecoveryCode&compactSigCompPubKey != 0
	pubKeyRecoveryCode := sigRecoveryCode & 3

	// Step 1.
	sig, err := ParseSignature(signature[1:])
	if err != nil {
		return nil, false, err
	}
	if err := checkHashLen(hash); err != nil {
		return nil, false, err
	}
	curve := S256()

	// Step 2.
	overflow := pubKeyRecoveryCode&pubKeyRecoveryCodeOverflowBit != 0
	x, ok := recoveryCandidateX(curve, sig.r.v, overflow)
	if !ok {
		return nil, false, signatureError(ErrInvalidSignature,
			"signature R + N >= P")
	}

	// Step 3.
	oddY := pubKeyRecoveryCode&pubKeyRecoveryCodeOddnessBit != 0
	X, err := curve.decompress(newFieldElement(x, curve.p), oddY)
	if err != nil {
		str := fmt.Sprintf("signature is not for a valid curve point: %v", err)
		return nil, false, signatureError(ErrInvalidSignature, str)
	}

	// Step 4.
	e := scalarFromHash(curve, hash)
	w, err := sig.r.Inverse()
	if err != nil {
		return nil, false, err
	}

	// Step 5.
	u1 := e.mul(w).Negate()
	u2 := sig.s.mul(w)

	// Step 6.
	u1G, err := curve.ScalarBaseMult(u1.v)
	if err != nil {
		return nil, false, err
	}
	u2X, err := curve.ScalarMult(u2.v, X)
	if err != nil {
		return nil, false, err
	}
	Q, err := curve.Add(u1G, u2X)
	if err != nil {
		return nil, false, err
	}
	if Q.IsInfinity() {
		return nil, false, signatureError(ErrSignatureVerificationFailed,
			"recovered public key is the point at infinity")
	}

	pubKey, err := NewPublicKey(Q)
	if err != nil {
		return nil, false, err
	}
	return pubKey, wasCompressed, nil
}

// recoveryCandidateX returns the x coordinate of the random point for r and
// the overflow bit of a recovery code along with whether or not it is a valid
// field element.
func recoveryCandidateX(curve *CurveParams, r *big.Int, overflow bool) (*big.Int, bool) {
	x := new(big.Int).Set(r)
	if overflow {
		x.Add(x, curve.n)
	}
	return x, x.Cmp(curve.p) < 0
}

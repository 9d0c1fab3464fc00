// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"fmt"
)

// HashSize is the size in bytes of the message digests that are signed and
// verified.
const HashSize = 32

// VerifyPolicy selects which of the two algebraically valid S values of a
// signature verification accepts.
type VerifyPolicy int

const (
	// AcceptHighS accepts any mathematically valid signature, including one
	// whose S value is greater than N/2.
	AcceptHighS VerifyPolicy = iota

	// RejectHighS additionally requires the canonical form of [BIP62] and
	// fails with ErrNonCanonicalSignature when S is greater than N/2.
	RejectHighS
)

// String returns the VerifyPolicy as a human-readable name.
func (p VerifyPolicy) String() string {
	switch p {
	case AcceptHighS:
		return "AcceptHighS"
	case RejectHighS:
		return "RejectHighS"
	}
	return fmt.Sprintf("Unknown VerifyPolicy (%d)", int(p))
}

// Verify verifies the signature for the provided 32-byte hash and public key
// under the AcceptHighS policy.  It returns nil when the signature is valid.
func Verify(pubKey *PublicKey, hash []byte, sig *Signature) error {
	return VerifyWithPolicy(pubKey, hash, sig, AcceptHighS)
}

// VerifyWithPolicy verifies the signature for the provided hash and public
// key under the given policy.  It returns nil when the signature is valid and
// otherwise an error of one of the following kinds:
//
//   - ErrInvalidSignature when R or S is not in [1, N-1]
//   - ErrInvalidInput when the hash is not 32 bytes
//   - ErrInvalidPublicKey when the key is not an affine point on the curve
//   - ErrNonCanonicalSignature when the policy is RejectHighS and S > N/2
//   - ErrSignatureVerificationFailed when the signature does not match
func VerifyWithPolicy(pubKey *PublicKey, hash []byte, sig *Signature, policy VerifyPolicy) error {
	// The algorithm for verifying an ECDSA signature is given as algorithm 4.30
	// in [GECC].
	//
	// The following is a paraphrased version for reference:
	//
	// G = curve generator
	// N = curve order
	// Q = public key
	// m = message
	// R, S = signature
	//
	// 1. Fail if R and S are not in [1, N-1]
	// 2. e = H(m)
	// 3. w = S^-1 mod N
	// 4. u1 = e * w mod N
	//    u2 = R * w mod N
	// 5. X = u1G + u2Q
	// 6. Fail if X is the point at infinity
	// 7. x = X.x mod N (X.x is the x coordinate of X)
	// 8. Verified if x == R
	curve := S256()

	// Step 1.
	//
	// Fail if R and S are not in [1, N-1].
	if sig == nil || !inScalarRange(curve, sig.r) || !inScalarRange(curve, sig.s) {
		return signatureError(ErrInvalidSignature, "signature R or S is not "+
			"in [1, N-1]")
	}

	if pubKey == nil || pubKey.point == nil || pubKey.point.IsInfinity() ||
		!curve.IsOnCurve(pubKey.point) {

		return makeError(ErrInvalidPublicKey, "public key is not a point on "+
			"the secp256k1 curve")
	}

	if policy == RejectHighS && !sig.IsLowS() {
		return signatureError(ErrNonCanonicalSignature, "signature S is "+
			"greater than N/2")
	}

	if err := checkHashLen(hash); err != nil {
		return err
	}

	// Step 2.
	//
	// e = H(m) mod N
	e := scalarFromHash(curve, hash)

	// Step 3.
	//
	// w = S^-1 mod N
	w, err := sig.s.Inverse()
	if err != nil {
		return err
	}

	// Step 4.
	//
	// u1 = e * w mod N
	// u2 = R * w mod N
	u1 := e.mul(w)
	u2 := sig.r.mul(w)

	// Step 5.
	//
	// X = u1G + u2Q
	u1G, err := curve.ScalarBaseMult(u1.v)
	if err != nil {
		return err
	}
	u2Q, err := curve.ScalarMult(u2.v, pubKey.point)
	if err != nil {
		return err
	}
	X, err := curve.Add(u1G, u2Q)
	if err != nil {
		return err
	}

	// Step 6.
	//
	// Fail if X is the point at infinity
	if X.IsInfinity() {
		return signatureError(ErrSignatureVerificationFailed, "signature "+
			"verification point is the point at infinity")
	}

	// Step 7 and 8.
	//
	// x = X.x mod N
	// Verified if x == R
	if !newModNScalar(X.x.n, curve.n).Equals(sig.r) {
		return signatureError(ErrSignatureVerificationFailed, "signature "+
			"does not match the hash and public key")
	}
	return nil
}

// inScalarRange returns whether or not s is a scalar in [1, N-1] of the curve.
func inScalarRange(curve *CurveParams, s *ModNScalar) bool {
	return s != nil && s.v != nil && s.n != nil && s.n.Cmp(curve.n) == 0 &&
		!s.IsZero()
}

// Verify returns whether or not the signature is valid for the provided hash
// and secp256k1 public key under the AcceptHighS policy.
func (sig *Signature) Verify(hash []byte, pubKey *PublicKey) bool {
	return Verify(pubKey, hash, sig) == nil
}

// checkHashLen returns an ErrInvalidInput error unless hash is a 32-byte
// message digest.
func checkHashLen(hash []byte) error {
	if len(hash) != HashSize {
		str := fmt.Sprintf("message hash is %d bytes instead of %d", len(hash),
			HashSize)
		return makeError(ErrInvalidInput, str)
	}
	return nil
}

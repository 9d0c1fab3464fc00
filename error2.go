// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

// These constants are used to identify a specific Error.
const (
	// ErrModulusMismatch is returned when two field elements or scalars that
	// belong to different moduli are combined.
	ErrModulusMismatch = ErrorKind("ErrModulusMismatch")

	// ErrInvalidModulus is returned when a field is requested with a modulus
	// that is not greater than one.
	ErrInvalidModulus = ErrorKind("ErrInvalidModulus")

	// ErrNotInvertible is returned when the multiplicative inverse of the
	// additive identity is requested.
	ErrNotInvertible = ErrorKind("ErrNotInvertible")

	// ErrFieldOverflow is returned when a fixed-width encoding of a field
	// element has the wrong length or holds a value that is not less than the
	// modulus.
	ErrFieldOverflow = ErrorKind("ErrFieldOverflow")

	// ErrPointNotOnCurve is returned when a point supplied by the caller does
	// not satisfy the curve equation, or when an x coordinate has no
	// corresponding y coordinate during decompression.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrInvalidPointEncoding is returned when a serialized point has an
	// unknown format byte or a length that does not match its format.
	ErrInvalidPointEncoding = ErrorKind("ErrInvalidPointEncoding")

	// ErrInvalidScalarRange is returned when a scalar is not within its
	// required range, such as a value that is greater than or equal to the
	// group order or a zero value where a nonzero one is required.
	ErrInvalidScalarRange = ErrorKind("ErrInvalidScalarRange")

	// ErrInvalidPrivateKey is returned when a private key has the wrong length
	// or is not in the range [1, N-1].
	ErrInvalidPrivateKey = ErrorKind("ErrInvalidPrivateKey")

	// ErrInvalidPublicKey is returned when a public key has an invalid
	// encoding, is not on the curve, or is the point at infinity.
	ErrInvalidPublicKey = ErrorKind("ErrInvalidPublicKey")

	// ErrInvalidInput is returned by the nonce generator when the private key
	// is zero or out of range or the message hash does not have the expected
	// length.
	ErrInvalidInput = ErrorKind("ErrInvalidInput")

	// ErrInvalidSignature is returned when the R or S value of a signature
	// handed to verification is not in the range [1, N-1].
	ErrInvalidSignature = ErrorKind("ErrInvalidSignature")

	// ErrInvalidSignatureEncoding is returned when a serialized signature does
	// not follow the byte layout of the format it is parsed as.
	ErrInvalidSignatureEncoding = ErrorKind("ErrInvalidSignatureEncoding")

	// ErrNonCanonicalSignature is returned when verification is performed
	// with the RejectHighS policy and the S value is greater than half the
	// group order.
	ErrNonCanonicalSignature = ErrorKind("ErrNonCanonicalSignature")

	// ErrSignatureVerificationFailed is returned when a well-formed signature
	// does not verify for the provided hash and public key.
	ErrSignatureVerificationFailed = ErrorKind("ErrSignatureVerificationFailed")

	// ErrNonceDerivationFailed is returned when the RFC6979 nonce stream does
	// not produce a usable nonce within the iteration bounds.  It is not
	// expected to ever happen and indicates a defect.
	ErrNonceDerivationFailed = ErrorKind("ErrNonceDerivationFailed")
)

// signatureError creates an Error given a set of arguments.
func signatureError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

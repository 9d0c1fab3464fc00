// Copyright (c) 2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"errors"
	"testing"
)

// TestErrorKindStringer tests the stringized output for the ErrorKind type.
func TestErrorKindStringer(t *testing.T) {
	tests := []struct {
		in   ErrorKind
		want string
	}{
		{ErrModulusMismatch, "ErrModulusMismatch"},
		{ErrInvalidModulus, "ErrInvalidModulus"},
		{ErrNotInvertible, "ErrNotInvertible"},
		{ErrFieldOverflow, "ErrFieldOverflow"},
		{ErrPointNotOnCurve, "ErrPointNotOnCurve"},
		{ErrInvalidPointEncoding, "ErrInvalidPointEncoding"},
		{ErrInvalidScalarRange, "ErrInvalidScalarRange"},
		{ErrInvalidPrivateKey, "ErrInvalidPrivateKey"},
		{ErrInvalidPublicKey, "ErrInvalidPublicKey"},
		{ErrInvalidInput, "ErrInvalidInput"},
		{ErrInvalidSignature, "ErrInvalidSignature"},
		{ErrInvalidSignatureEncoding, "ErrInvalidSignatureEncoding"},
		{ErrNonCanonicalSignature, "ErrNonCanonicalSignature"},
		{ErrSignatureVerificationFailed, "ErrSignatureVerificationFailed"},
		{ErrNonceDerivationFailed, "ErrNonceDerivationFailed"},
	}

	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("#%d: got: %s want: %s", i, result, test.want)
			continue
		}
	}
}

// TestError tests the error output for the Error type.
func TestError(t *testing.T) {
	tests := []struct {
		in   Error
		want string
	}{{
		Error{Description: "some error"},
		"some error",
	}, {
		Error{Description: "human-readable error"},
		"human-readable error",
	}}

	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("#%d: got: %s want: %s", i, result, test.want)
			continue
		}
	}
}

// TestErrorKindIsAs ensures both ErrorKind and Error can be identified as being
// a specific error kind via errors.Is and unwrapped via errors.As.
func TestErrorKindIsAs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
		wantAs    ErrorKind
	}{{
		name:      "ErrInvalidPublicKey == ErrInvalidPublicKey",
		err:       ErrInvalidPublicKey,
		target:    ErrInvalidPublicKey,
		wantMatch: true,
		wantAs:    ErrInvalidPublicKey,
	}, {
		name:      "Error.ErrInvalidPublicKey == ErrInvalidPublicKey",
		err:       makeError(ErrInvalidPublicKey, ""),
		target:    ErrInvalidPublicKey,
		wantMatch: true,
		wantAs:    ErrInvalidPublicKey,
	}, {
		name:      "Error.ErrInvalidPublicKey == Error.ErrInvalidPublicKey",
		err:       makeError(ErrInvalidPublicKey, ""),
		target:    makeError(ErrInvalidPublicKey, ""),
		wantMatch: true,
		wantAs:    ErrInvalidPublicKey,
	}, {
		name:      "ErrPointNotOnCurve != ErrInvalidPublicKey",
		err:       ErrPointNotOnCurve,
		target:    ErrInvalidPublicKey,
		wantMatch: false,
		wantAs:    ErrPointNotOnCurve,
	}, {
		name:      "Error.ErrPointNotOnCurve != ErrInvalidPublicKey",
		err:       makeError(ErrPointNotOnCurve, ""),
		target:    ErrInvalidPublicKey,
		wantMatch: false,
		wantAs:    ErrPointNotOnCurve,
	}, {
		name:      "ErrPointNotOnCurve != Error.ErrInvalidPublicKey",
		err:       ErrPointNotOnCurve,
		target:    makeError(ErrInvalidPublicKey, ""),
		wantMatch: false,
		wantAs:    ErrPointNotOnCurve,
	}, {
		name:      "Error.ErrPointNotOnCurve != Error.ErrInvalidPublicKey",
		err:       makeError(ErrPointNotOnCurve, ""),
		target:    makeError(ErrInvalidPublicKey, ""),
		wantMatch: false,
		wantAs:    ErrPointNotOnCurve,
	}, {
		name:      "ErrInvalidSignature == ErrInvalidSignature",
		err:       ErrInvalidSignature,
		target:    ErrInvalidSignature,
		wantMatch: true,
		wantAs:    ErrInvalidSignature,
	}, {
		name:      "Error.ErrInvalidSignature == ErrInvalidSignature",
		err:       signatureError(ErrInvalidSignature, ""),
		target:    ErrInvalidSignature,
		wantMatch: true,
		wantAs:    ErrInvalidSignature,
	}, {
		name:      "Error.ErrInvalidSignature == Error.ErrInvalidSignature",
		err:       signatureError(ErrInvalidSignature, ""),
		target:    signatureError(ErrInvalidSignature, ""),
		wantMatch: true,
		wantAs:    ErrInvalidSignature,
	}, {
		name:      "ErrNonCanonicalSignature != ErrInvalidSignature",
		err:       ErrNonCanonicalSignature,
		target:    ErrInvalidSignature,
		wantMatch: false,
		wantAs:    ErrNonCanonicalSignature,
	}, {
		name:      "Error.ErrNonCanonicalSignature != ErrInvalidSignature",
		err:       signatureError(ErrNonCanonicalSignature, ""),
		target:    ErrInvalidSignature,
		wantMatch: false,
		wantAs:    ErrNonCanonicalSignature,
	}, {
		name:      "ErrNonCanonicalSignature != Error.ErrInvalidSignature",
		err:       ErrNonCanonicalSignature,
		target:    signatureError(ErrInvalidSignature, ""),
		wantMatch: false,
		wantAs:    ErrNonCanonicalSignature,
	}, {
		name:      "Error.ErrNonCanonicalSignature != Error.ErrInvalidSignature",
		err:       signatureError(ErrNonCanonicalSignature, ""),
		target:    signatureError(ErrInvalidSignature, ""),
		wantMatch: false,
		wantAs:    ErrNonCanonicalSignature,
	}}

	for _, test := range tests {
		// Ensure the error matches or not depending on the expected result.
		result := errors.Is(test.err, test.target)
		if result != test.wantMatch {
			t.Errorf("%s: incorrect error identification -- got %v, want %v",
				test.name, result, test.wantMatch)
			continue
		}

		// Ensure the underlying error code can be unwrapped and is the expected
		// code.
		var kind ErrorKind
		if !errors.As(test.err, &kind) {
			t.Errorf("%s: unable to unwrap to error code", test.name)
			continue
		}
		if kind != test.wantAs {
			t.Errorf("%s: unexpected unwrapped error code -- got %v, want %v",
				test.name, kind, test.wantAs)
			continue
		}
	}
}

// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

// GenerateSharedSecret generates a shared secret based on a private key and a
// public key using Diffie-Hellman key exchange (ECDH) (RFC 5903).
// RFC5903 Section 9 states we should only return x.
//
// It is recommended to securely hash the result before using as a cryptographic
// key.
func GenerateSharedSecret(privkey *PrivateKey, pubkey *PublicKey) ([]byte, error) {
	if privkey == nil {
		return nil, makeError(ErrInvalidPrivateKey, "missing private key")
	}
	if pubkey == nil || pubkey.point == nil {
		return nil, makeError(ErrInvalidPublicKey, "missing public key")
	}

	curve := S256()
	result, err := curve.ScalarMult(privkey.key.v, pubkey.point)
	if err != nil {
		return nil, err
	}

	// The order of the group is prime and the key is in [1, N-1], so the
	// product of a valid public key is never the point at infinity.
	if result.IsInfinity() {
		return nil, makeError(ErrInvalidPublicKey, "shared point is the point "+
			"at infinity")
	}
	return result.x.Bytes(), nil
}

// ECDH generates a shared secret and is an alias to GenerateSharedSecret, however
// by being part of the private key it is closer to go's own ecdh api.
func (privkey *PrivateKey) ECDH(remote *PublicKey) ([]byte, error) {
	return GenerateSharedSecret(privkey, remote)
}

// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package k1 implements secp256k1 elliptic curve cryptography and deterministic
ECDSA signatures from first principles in pure Go.

The package is built bottom-up from arbitrary-precision integers.  Field
elements, curve points and scalars are immutable values whose arithmetic is a
direct transcription of the textbook formulas, which makes the code easy to
follow and to check against the references cited throughout.  See
https://www.secg.org/sec2-v2.pdf for details on the secp256k1 standard.

An overview of the features provided by this package are as follows:

  - FieldElement type for working modulo an arbitrary prime, with inversion by
    the extended Euclidean algorithm or Fermat's little theorem and square
    roots
  - CurveParams describing short Weierstrass curves, with S256 returning the
    secp256k1 parameters
  - Point addition, doubling, negation and scalar multiplication in affine
    coordinates, with selectable double-and-add and Montgomery ladder
    strategies
  - Point compression, decompression and SEC1 serialization
  - ModNScalar type for working modulo the group order
  - Private key generation, serialization, and parsing
  - Public key parsing and serialization in the compressed and uncompressed
    formats
  - Nonce generation via RFC6979 with support for extra data and alternative
    hash functions
  - Canonical (low S) ECDSA signing and verification with a selectable policy
    for signatures with a high S value
  - Raw, DER and compact (recoverable) signature encodings
  - Public key recovery from compact signatures
  - Elliptic curve Diffie-Hellman shared secrets
  - An implementation of crypto.Signer

# Errors

Errors detected by this package are of type k1.Error and wrap an ErrorKind.
This allows the caller to programmatically determine the specific error by
using errors.Is or errors.As.

# Signatures

The canonical wire form of a signature is the 64-byte concatenation of R and S,
each a 32-byte big-endian integer.  Signatures produced by Sign always have an
S value of at most N/2.  Verify accepts both S and N - S, while
VerifyWithPolicy with RejectHighS only accepts the former.

# Timing

None of the operations run in constant time.  The package is meant as a
readable reference and must not be used where an attacker can measure the time
taken by operations that involve private keys or nonces.
*/
package k1

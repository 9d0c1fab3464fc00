// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package k1

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"hash"
	"math/big"
)

// References:
//   [RFC6979]: Deterministic Usage of the Digital Signature Algorithm (DSA)
//     and Elliptic Curve Digital Signature Algorithm (ECDSA)
//     https://www.rfc-editor.org/rfc/rfc6979

const (
	// maxNonceCandidates is the number of consecutive out of range candidates
	// a NonceGenerator tolerates before giving up.  Each candidate is out of
	// range for secp256k1 with a probability of about 2^-128.
	maxNonceCandidates = 64

	// maxSignIterations is the number of nonces signing tries before giving
	// up.  A nonce is only discarded when it leads to r = 0 or s = 0.
	maxSignIterations = 64
)

var (
	singleZero = []byte{0x00}
	singleOne  = []byte{0x01}
)

// NonceOption configures a NonceGenerator.
type NonceOption func(*nonceConfig)

type nonceConfig struct {
	hashFn func() hash.Hash
	extra  []byte
	curve  *CurveParams
}

// WithHashFunc sets the hash function of the HMAC-DRBG.  It defaults to
// SHA-256.  The message hash handed to the generator must have the output size
// of this function.
func WithHashFunc(fn func() hash.Hash) NonceOption {
	return func(cfg *nonceConfig) {
		cfg.hashFn = fn
	}
}

// WithExtraData appends additional data k' to the seed material per section
// 3.6 of [RFC6979].  Distinct extra data yields an independent nonce stream
// for the same key and message.
func WithExtraData(extra []byte) NonceOption {
	return func(cfg *nonceConfig) {
		cfg.extra = append([]byte(nil), extra...)
	}
}

// WithCurve sets the curve whose group order bounds the nonces.  It defaults to
// secp256k1.
func WithCurve(curve *CurveParams) NonceOption {
	return func(cfg *nonceConfig) {
		cfg.curve = curve
	}
}

// NonceGenerator produces the deterministic nonce stream of section 3.2 of
// [RFC6979] for a private key and message hash.
//
// A NonceGenerator holds the secret HMAC-DRBG state derived from the private
// key.  It is not safe for concurrent use, and a new one must be created for
// every signature.
type NonceGenerator struct {
	hashFn  func() hash.Hash
	n       *big.Int
	qlen    int
	k, v    []byte
	started bool
}

// NewNonceGenerator seeds a generator with the private key and message hash
// following steps a through g of section 3.2 of [RFC6979].
//
// The private key must be the big-endian encoding of a scalar in [1, N-1]
// padded to the byte length of N, and the hash must be exactly as long as the
// output of the configured hash function.  ErrInvalidInput is returned
// otherwise.
func NewNonceGenerator(privKey, hash []byte, opts ...NonceOption) (*NonceGenerator, error) {
	cfg := nonceConfig{hashFn: sha256.New, curve: S256()}
	for _, opt := range opts {
		opt(&cfg)
	}
	n := cfg.curve.n
	rlen := byteLen(n)

	if len(privKey) != rlen {
		str := fmt.Sprintf("private key is %d bytes instead of %d", len(privKey),
			rlen)
		return nil, makeError(ErrInvalidInput, str)
	}
	x := new(big.Int).SetBytes(privKey)
	if x.Sign() == 0 || x.Cmp(n) >= 0 {
		return nil, makeError(ErrInvalidInput, "private key is not in [1, N-1]")
	}
	hlen := cfg.hashFn().Size()
	if len(hash) != hlen {
		str := fmt.Sprintf("message hash is %d bytes instead of %d", len(hash),
			hlen)
		return nil, makeError(ErrInvalidInput, str)
	}

	// Step a is performed by the caller.
	//
	// bits2octets(h1) = int2octets(bits2int(h1) mod q)
	h1 := bits2int(hash, n.BitLen())
	h1.Mod(h1, n)
	h1Octets := h1.FillBytes(make([]byte, rlen))

	// Steps b and c.
	//
	// V = 0x01 0x01 0x01 ... 0x01
	// K = 0x00 0x00 0x00 ... 0x00
	v := make([]byte, hlen)
	for i := range v {
		v[i] = 0x01
	}
	k := make([]byte, hlen)

	// Step d.
	//
	// K = HMAC_K(V || 0x00 || int2octets(x) || bits2octets(h1) || k')
	k = hmacSum(cfg.hashFn, k, v, singleZero, privKey, h1Octets, cfg.extra)

	// Step e.
	//
	// V = HMAC_K(V)
	v = hmacSum(cfg.hashFn, k, v)

	// Step f.
	//
	// K = HMAC_K(V || 0x01 || int2octets(x) || bits2octets(h1) || k')
	k = hmacSum(cfg.hashFn, k, v, singleOne, privKey, h1Octets, cfg.extra)

	// Step g.
	//
	// V = HMAC_K(V)
	v = hmacSum(cfg.hashFn, k, v)

	return &NonceGenerator{
		hashFn: cfg.hashFn,
		n:      n,
		qlen:   n.BitLen(),
		k:      k,
		v:      v,
	}, nil
}

// hmacSum returns HMAC_key(data[0] || data[1] || ...).
func hmacSum(fn func() hash.Hash, key []byte, data ...[]byte) []byte {
	mac := hmac.New(fn, key)
	for _, d := range data {
		mac.Write(d)
	}
	return mac.Sum(nil)
}

// reseed performs K = HMAC_K(V || 0x00) followed by V = HMAC_K(V).
func (g *NonceGenerator) reseed() {
	g.k = hmacSum(g.hashFn, g.k, g.v, singleZero)
	g.v = hmacSum(g.hashFn, g.k, g.v)
}

// Next returns the next nonce of the stream, which is in [1, N-1].  The first
// call returns the nonce of step h of section 3.2 of [RFC6979] and every
// following call continues the stream as described for the case where the
// previous nonce was not suitable.
//
// ErrNonceDerivationFailed is returned if too many consecutive candidates are
// out of range.
func (g *NonceGenerator) Next() (*ModNScalar, error) {
	if g.started {
		g.reseed()
	}
	g.started = true

	for i := 0; i < maxNonceCandidates; i++ {
		// Step h1 and h2.
		//
		// T = empty sequence
		// While tlen < qlen: V = HMAC_K(V), T = T || V
		var t []byte
		for len(t)*8 < g.qlen {
			g.v = hmacSum(g.hashFn, g.k, g.v)
			t = append(t, g.v...)
		}

		// Step h3.
		//
		// k = bits2int(T)
		// If k is within the range [1, q-1], return it.
		secret := bits2int(t, g.qlen)
		if secret.Sign() > 0 && secret.Cmp(g.n) < 0 {
			return &ModNScalar{v: secret, n: g.n}, nil
		}

		// Otherwise K = HMAC_K(V || 0x00), V = HMAC_K(V) and loop.
		g.reseed()
	}

	str := fmt.Sprintf("no nonce in [1, N-1] after %d candidates",
		maxNonceCandidates)
	return nil, makeError(ErrNonceDerivationFailed, str)
}

// NonceRFC6979 generates a nonce deterministically according to [RFC6979]
// using HMAC-SHA256 for the secp256k1 private key and 32-byte message hash.
//
// The extraIterations parameter selects a later nonce of the same stream.
// Zero returns the first nonce, one the nonce signing falls back to when the
// first one produces an invalid signature, and so on.
func NonceRFC6979(privKey, hash []byte, extraIterations uint32) (*ModNScalar, error) {
	gen, err := NewNonceGenerator(privKey, hash)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); ; i++ {
		k, err := gen.Next()
		if err != nil || i == extraIterations {
			return k, err
		}
	}
}

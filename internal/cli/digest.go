package cli

import (
	"crypto/sha256"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// digestFuncs maps the digest.algorithm setting to a 32-byte hash function.
var digestFuncs = map[string]func([]byte) []byte{
	"sha256": func(b []byte) []byte {
		h := sha256.Sum256(b)
		return h[:]
	},
	"sha256d": func(b []byte) []byte {
		first := sha256.Sum256(b)
		second := sha256.Sum256(first[:])
		return second[:]
	},
	"blake256": chainhash.HashB,
}

func digest(algorithm string, msg []byte) ([]byte, error) {
	fn, ok := digestFuncs[algorithm]
	if !ok {
		return nil, errors.Errorf("unsupported digest algorithm: %s", algorithm)
	}
	return fn(msg), nil
}

package k1

import (
	"context"
	"crypto"
	"crypto/sha256"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestPrivateKeySigner(t *testing.T) {
	key := randPrivKey(t, rand.New(rand.NewSource(7)))
	digest := sha256.Sum256([]byte("crypto.Signer"))

	var signer crypto.Signer = key
	require.Same(t, key.PubKey(), signer.Public())

	raw, err := signer.Sign(nil, digest[:], crypto.SHA256)
	require.NoError(t, err)
	require.Len(t, raw, SignatureSize)
	sig, err := ParseSignature(raw)
	require.NoError(t, err)
	require.NoError(t, Verify(key.PubKey(), digest[:], sig))

	der, err := signer.Sign(nil, digest[:], &SignOptions{Hash: crypto.SHA256, Format: FormatDER})
	require.NoError(t, err)
	parsed, err := ParseDERSignature(der)
	require.NoError(t, err)
	require.True(t, parsed.IsEqual(sig))

	raw2, err := signer.Sign(nil, digest[:], &SignOptions{Hash: crypto.SHA256})
	require.NoError(t, err)
	require.Equal(t, raw, raw2)

	_, err = signer.Sign(nil, digest[:16], crypto.SHA256)
	require.Error(t, err)
}

// TestConcurrentSignVerify ensures keys and signatures are safe to share
// between goroutines.
func TestConcurrentSignVerify(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	keys := make([]*PrivateKey, 4)
	for i := range keys {
		keys[i] = randPrivKey(t, rng)
	}
	digest := sha256.Sum256([]byte("shared"))
	want, err := Sign(keys[0], digest[:])
	require.NoError(t, err)

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 16; i++ {
		key := keys[i%len(keys)]
		g.Go(func() error {
			sig, err := Sign(key, digest[:])
			if err != nil {
				return err
			}
			if key == keys[0] && !sig.IsEqual(want) {
				return errors.New("signature differs between goroutines")
			}
			if err := Verify(key.PubKey(), digest[:], sig); err != nil {
				return err
			}
			return Verify(keys[0].PubKey(), digest[:], want)
		})
	}
	require.NoError(t, g.Wait())
}

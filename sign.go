package k1

import (
	"crypto"
	"io"
)

// SignatureFormat selects the encoding of signatures returned by
// PrivateKey.Sign.
type SignatureFormat int

const (
	// FormatRaw is the canonical 64-byte R || S encoding.
	FormatRaw SignatureFormat = iota

	// FormatDER is the ASN.1 DER encoding.
	FormatDER
)

// SignOptions are the crypto.SignerOpts accepted by PrivateKey.Sign.
type SignOptions struct {
	Hash   crypto.Hash
	Format SignatureFormat
}

func (s *SignOptions) HashFunc() crypto.Hash {
	return s.Hash
}

// Public returns the public key corresponding to the private key.
func (privkey *PrivateKey) Public() crypto.PublicKey {
	return privkey.pub
}

// Sign will sign the provided digest, returning the resulting signature in the
// raw 64-byte form, or in DER when [SignOptions] asks for it.  The digest must
// be 32 bytes.  The rand reader is ignored since the nonce is derived
// deterministically.
func (privkey *PrivateKey) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	sig, err := Sign(privkey, digest)
	if err != nil {
		return nil, err
	}
	if so, ok := opts.(*SignOptions); ok && so.Format == FormatDER {
		return sig.SerializeDER(), nil
	}
	return sig.Serialize(), nil
}

package ecckd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/ModChain/base58"
	"github.com/ModChain/k1"
)

type ExtendedKey struct {
	Version     KeyVersion
	Depth       uint8
	Fingerprint [4]byte
	ChildNumber uint32 // ser32(i) for i in xi = xpar/i, with xi the key being serialized. (0x00000000 if master key)
	KeyData     []byte // 33 bytes for public keys (serP(K)), 32 bytes for private keys (ser256(k))
	ChainCode   []byte // 32 bytes, the chain code
}

// FromBitcoinSeed returns a master node for a bitcoin wallet
func FromBitcoinSeed(seed []byte) (*ExtendedKey, error) {
	return FromSeed(seed, []byte("Bitcoin seed"))
}

// FromSeed returns the master node derived from seed with the given HMAC key.
// The seed must be between 128 and 512 bits.
func FromSeed(seed, masterSecret []byte) (*ExtendedKey, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, ErrInvalidSeedLen
	}
	key, chainCode, _, err := hmacCKD(seed, masterSecret)
	if err != nil {
		return nil, ErrInvalidSeed
	}

	res := &ExtendedKey{
		Version:     BitcoinMainnetPrivate,
		Depth:       0,
		Fingerprint: [4]byte{0, 0, 0, 0},
		ChildNumber: 0,
		KeyData:     key,
		ChainCode:   chainCode,
	}
	return res, nil
}

// FromPublicKey returns a public master node for the key and chain code.
func FromPublicKey(pub *k1.PublicKey, chainCode []byte) (*ExtendedKey, error) {
	if len(chainCode) != 32 {
		return nil, ErrInvalidChainCode
	}
	return &ExtendedKey{
		Version:   BitcoinMainnetPublic,
		KeyData:   pub.SerializeCompressed(),
		ChainCode: append([]byte(nil), chainCode...),
	}, nil
}

func FromString(str string) (*ExtendedKey, error) {
	bin, err := base58.Bitcoin.Decode(str)
	if err != nil {
		return nil, err
	}

	e := &ExtendedKey{}
	return e, e.UnmarshalBinary(bin)
}

func (k *ExtendedKey) IsPrivate() bool {
	return k.Version.IsPrivate()
}

// Child derives extended key at a given index i.
// If parent is private, then derived key is also private. If parent is public, then derived is public.
//
// If i >= HardenedBit, then hardened key is generated.
// You can only generate hardened keys from private parent keys.
// If you try generating hardened key form public parent key, ErrDerivingHardenedFromPublic is returned.
//
// There are four CKD (child key derivation) scenarios:
// 1) Private extended key -> Hardened child private extended key
// 2) Private extended key -> Non-hardened child private extended key
// 3) Public extended key -> Non-hardened child public extended key
// 4) Public extended key -> Hardened child public extended key (INVALID!)
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	child, _, err := k.child(i)
	return child, err
}

// child derives the child at index i and also returns parse256(IL), the
// scalar that was added to the parent key.
func (k *ExtendedKey) child(i uint32) (*ExtendedKey, *k1.ModNScalar, error) {
	if k.Depth == 0xff {
		return nil, nil, ErrMaxDepthExceeded
	}

	// A hardened child may not be created from a public extended key (Case #4).
	isChildHardened := i&HardenedBit == HardenedBit
	if !k.IsPrivate() && isChildHardened {
		return nil, nil, ErrDerivingHardenedFromPublic
	}

	parentPub, err := k.pubKeyBytes()
	if err != nil {
		return nil, nil, err
	}

	keyLen := 33
	seed := make([]byte, keyLen+4)
	if isChildHardened {
		// Case #1: 0x00 || ser256(parentKey) || ser32(i)
		copy(seed[1:], k.KeyData) // 0x00 || ser256(parentKey)
	} else {
		// Case #2 and #3: serP(parentPubKey) || ser32(i)
		copy(seed, parentPub)
	}
	binary.BigEndian.PutUint32(seed[keyLen:], i)

	_, chainCode, il, err := hmacCKD(seed, k.ChainCode)
	if err != nil {
		return nil, nil, err
	}

	child := &ExtendedKey{
		ChainCode:   chainCode,
		Depth:       k.Depth + 1,
		ChildNumber: i,
	}
	// The fingerprint for the derived child is the first 4 bytes of parent's
	// hash160.
	copy(child.Fingerprint[:], rmd160sha256(parentPub))

	if k.IsPrivate() {
		// Case #1 or #2: childKey = parse256(IL) + parentKey
		parentKey, err := k1.ParseNonZeroScalar(k.KeyData)
		if err != nil {
			return nil, nil, ErrInvalidKey
		}
		childKey, err := il.Add(parentKey)
		if err != nil {
			return nil, nil, err
		}
		if childKey.IsZero() {
			return nil, nil, ErrInvalidKey
		}

		// Bytes is always 32 bytes long, so deriving from the child uses the
		// same seed layout as deriving from a key with a high byte set.
		child.KeyData = childKey.Bytes()
		child.Version = k.Version
	} else {
		// Case #3: childKey = serP(point(parse256(IL)) + parentKey)
		curve := k1.S256()
		tweak, err := curve.ScalarBaseMult(il.BigInt())
		if err != nil {
			return nil, nil, err
		}

		// Convert the serialized compressed parent public key into a point
		// so it can be added to the intermediate public key.
		pubKey, err := k1.ParsePubKey(k.KeyData)
		if err != nil {
			return nil, nil, err
		}

		sum, err := curve.Add(tweak, pubKey.Point())
		if err != nil {
			return nil, nil, err
		}
		pk, err := k1.NewPublicKey(sum)
		if err != nil {
			return nil, nil, ErrInvalidKey
		}
		child.KeyData = pk.SerializeCompressed()
		child.Version = k.Version.ToPublic()
	}
	return child, il, nil
}

// Derive returns a derived child key at a given path
func (k *ExtendedKey) Derive(path []uint32) (*ExtendedKey, error) {
	_, extKey, err := k.DeriveWithIL(path)
	return extKey, err
}

// DeriveWithIL returns a derived child key at a given path along with the sum
// of the parse256(IL) values of every step modulo N.  For a non-hardened path
// the child public key is the parent public key plus that sum times G, which
// lets holders of the parent private key compute the child private key.
func (k *ExtendedKey) DeriveWithIL(path []uint32) (*k1.ModNScalar, *ExtendedKey, error) {
	var err error
	total := k1.NewModNScalar(new(big.Int))
	extKey := k
	for _, i := range path {
		var il *k1.ModNScalar
		extKey, il, err = extKey.child(i)
		if err != nil {
			return nil, nil, ErrDerivingChild
		}
		if total, err = total.Add(il); err != nil {
			return nil, nil, err
		}
	}

	return total, extKey, nil
}

// Public returns a new extended public key from a give extended private key.
// If the input extended key is already public, it will be returned unaltered.
func (k *ExtendedKey) Public() (*ExtendedKey, error) {
	// Already an extended public key.
	if !k.IsPrivate() {
		return k, nil
	}

	// Convert it to an extended public key.  The key for the new extended
	// key will simply be the pubkey of the current extended private key.
	pub, err := k.pubKeyBytes()
	if err != nil {
		return nil, err
	}
	return &ExtendedKey{
		Version:     k.Version.ToPublic(),
		KeyData:     pub,
		ChainCode:   k.ChainCode,
		Fingerprint: k.Fingerprint,
		Depth:       k.Depth,
		ChildNumber: k.ChildNumber,
	}, nil
}

// MarshalBinary encodes the key in standard format that can be base58 encoded for humans
func (k *ExtendedKey) MarshalBinary() ([]byte, error) {
	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.ChildNumber)

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)
	serializedBytes := make([]byte, 0, serializedKeyLen+4)
	serializedBytes = append(serializedBytes, k.Version[:]...)
	serializedBytes = append(serializedBytes, k.Depth)
	serializedBytes = append(serializedBytes, k.Fingerprint[:]...)
	serializedBytes = append(serializedBytes, childNumBytes[:]...)
	serializedBytes = append(serializedBytes, k.ChainCode...)
	if k.IsPrivate() {
		serializedBytes = append(serializedBytes, 0x00)
		serializedBytes = paddedAppend(32, serializedBytes, k.KeyData)
	} else {
		pub, err := k.pubKeyBytes()
		if err != nil {
			return nil, err
		}
		serializedBytes = append(serializedBytes, pub...)
	}
	if len(serializedBytes) != serializedKeyLen {
		return nil, ErrInvalidKeyLen
	}

	checkSum := doubleSha256(serializedBytes)[:4]
	serializedBytes = append(serializedBytes, checkSum...)
	return serializedBytes, nil
}

func (k *ExtendedKey) String() string {
	bin, err := k.MarshalBinary()
	if err != nil {
		return ""
	}
	return base58.Bitcoin.Encode(bin)
}

// pubKeyBytes returns bytes for the serialized compressed public key associated
// with this extended key.
//
// When the extended key is already a public key, the key is simply returned as
// is since it's already in the correct form.
func (k *ExtendedKey) pubKeyBytes() ([]byte, error) {
	// Just return the key if it's already an extended public key.
	if !k.IsPrivate() {
		return k.KeyData, nil
	}

	privKey, err := k.PrivateKey()
	if err != nil {
		return nil, err
	}
	return privKey.PubKey().SerializeCompressed(), nil
}

// PrivateKey returns the key data as a k1.PrivateKey.  It fails for public
// extended keys.
func (k *ExtendedKey) PrivateKey() (*k1.PrivateKey, error) {
	if !k.IsPrivate() {
		return nil, ErrInvalidKey
	}
	privKey, err := k1.PrivKeyFromBytes(k.KeyData)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return privKey, nil
}

// PublicKey returns the public key of the extended key.
func (k *ExtendedKey) PublicKey() (*k1.PublicKey, error) {
	pub, err := k.pubKeyBytes()
	if err != nil {
		return nil, err
	}
	return k1.ParsePubKey(pub)
}

func (k *ExtendedKey) UnmarshalBinary(data []byte) error {
	if len(data) != serializedKeyLen+4 {
		return ErrInvalidKeyLen
	}

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)

	// Split the payload and checksum up and ensure the checksum matches.
	payload := data[:len(data)-4]
	checkSum := data[len(data)-4:]
	expectedCheckSum := doubleSha256(payload)[:4]
	if !bytes.Equal(checkSum, expectedCheckSum) {
		return ErrBadChecksum
	}

	// Deserialize each of the payload fields.
	var version KeyVersion
	copy(version[:], payload[:4])
	depth := payload[4:5][0]
	var fingerprint [4]byte
	copy(fingerprint[:], payload[5:9])
	childNumber := binary.BigEndian.Uint32(payload[9:13])
	chainCode := payload[13:45]
	keyData := payload[45:78]

	// The key data is a private key if it starts with 0x00.  Serialized
	// compressed pubkeys either start with 0x02 or 0x03.
	isPrivate := keyData[0] == 0x00
	if isPrivate != version.IsPrivate() {
		return ErrInvalidPrivateFlag
	}

	if isPrivate {
		// Ensure the private key is valid.  It must be within the range
		// of the order of the secp256k1 curve and not be 0.
		keyData = keyData[1:]
		if _, err := k1.ParseNonZeroScalar(keyData); err != nil {
			return ErrInvalidKey
		}
	} else {
		// Ensure the public key parses correctly and is actually on the
		// secp256k1 curve.
		if _, err := k1.ParsePubKey(keyData); err != nil {
			return err
		}
	}

	k.Version = version
	k.KeyData = append([]byte(nil), keyData...)
	k.ChainCode = append([]byte(nil), chainCode...)
	k.Fingerprint = fingerprint
	k.Depth = depth
	k.ChildNumber = childNumber
	return nil
}

// ParsePath parses a derivation path such as "m/0'/1/2h".  Hardened indexes
// are marked with a trailing ', h or H.  The leading "m/" is optional.
func ParsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "m" {
		return nil, nil
	}
	path = strings.TrimPrefix(path, "m/")

	parts := strings.Split(path, "/")
	res := make([]uint32, 0, len(parts))
	for _, part := range parts {
		var hardened bool
		if n := len(part); n > 0 && strings.ContainsAny(part[n-1:], "'hH") {
			hardened = true
			part = part[:n-1]
		}
		i, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, errors.Join(ErrInvalidPath, err)
		}
		idx := uint32(i)
		if hardened {
			idx |= HardenedBit
		}
		res = append(res, idx)
	}
	return res, nil
}

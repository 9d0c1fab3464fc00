package ecckd

const (
	// HardenedBit is set on the index of hardened children.
	HardenedBit = 0x80000000

	// serializedKeyLen is the length of a serialized extended key without
	// its checksum.
	serializedKeyLen = 4 + 1 + 4 + 4 + 32 + 33
)

type KeyVersion [4]byte

var (
	BitcoinMainnetPublic  = KeyVersion{0x04, 0x88, 0xb2, 0x1e}
	BitcoinMainnetPrivate = KeyVersion{0x04, 0x88, 0xad, 0xe4}
	BitcoinTestnetPublic  = KeyVersion{0x04, 0x35, 0x87, 0xcf}
	BitcoinTestnetPrivate = KeyVersion{0x04, 0x35, 0x83, 0x94}
)

// IsPrivate returns true if the version is for a private key
func (kv KeyVersion) IsPrivate() bool {
	switch kv {
	case BitcoinMainnetPrivate, BitcoinTestnetPrivate:
		return true
	}
	return false
}

// ToPublic returns the public counterpart of a private version.  Other
// versions are returned unchanged.
func (kv KeyVersion) ToPublic() KeyVersion {
	switch kv {
	case BitcoinMainnetPrivate:
		return BitcoinMainnetPublic
	case BitcoinTestnetPrivate:
		return BitcoinTestnetPublic
	}
	return kv
}

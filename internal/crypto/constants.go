package crypto

const (
	HashSize   = 32
	SecretSize = 8
	// Blake2_128Size is the digest size used for storage key prefixes.
	Blake2_128Size = 16
)

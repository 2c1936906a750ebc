package secrets

import "errors"

var (
	// ErrInvalidKey is returned when the key is not exactly 32 bytes.
	ErrInvalidKey = errors.New("invalid key: must be 32 bytes")

	// ErrEncryptionFailed wraps failures of the seal path.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed wraps failures of the open path, including
	// authentication failures from a wrong key.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidCiphertext is returned for malformed ciphertext input.
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")

	// ErrKeyDerivationFailed wraps HKDF failures.
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)

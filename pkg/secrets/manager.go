package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required master key size: 256 bits for AES-256.
	KeySize = 32

	// saltInfo provides domain separation for HKDF key derivation.
	saltInfo = "goffice-multitenancy-credentials-v1"
)

// Manager holds the derived encryption key for credential storage.
type Manager struct {
	key []byte
}

// NewManager derives the working key from the 32-byte master key.
func NewManager(masterKey []byte) (*Manager, error) {
	if len(masterKey) != KeySize {
		return nil, ErrInvalidKey
	}

	hkdfReader := hkdf.New(sha256.New, masterKey, nil, []byte(saltInfo))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdfReader, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return &Manager{key: key}, nil
}

// GenerateKey creates a new random master key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// EncryptString encrypts a plaintext credential. Returns base64-encoded
// ciphertext in the form nonce + sealed data.
func (m *Manager) EncryptString(plaintext string) (string, error) {
	aesGCM, err := m.aead()
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString decrypts a base64-encoded ciphertext back to the plaintext
// credential.
func (m *Manager) DecryptString(cipherText string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}

	aesGCM, err := m.aead()
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plain, err := aesGCM.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	return string(plain), nil
}

// Decrypt satisfies the catalog loader's Decrypter capability.
func (m *Manager) Decrypt(cipherText string) (string, error) {
	return m.DecryptString(cipherText)
}

func (m *Manager) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(m.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

package secrets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goffice/multitenancy/pkg/secrets"
)

func TestNewManager(t *testing.T) {
	t.Parallel()

	t.Run("valid key", func(t *testing.T) {
		t.Parallel()

		key, err := secrets.GenerateKey()
		require.NoError(t, err)
		require.Len(t, key, secrets.KeySize)

		m, err := secrets.NewManager(key)
		require.NoError(t, err)
		assert.NotNil(t, m)
	})

	t.Run("wrong key size", func(t *testing.T) {
		t.Parallel()

		_, err := secrets.NewManager([]byte("short"))
		assert.ErrorIs(t, err, secrets.ErrInvalidKey)

		_, err = secrets.NewManager(make([]byte, 64))
		assert.ErrorIs(t, err, secrets.ErrInvalidKey)

		_, err = secrets.NewManager(nil)
		assert.ErrorIs(t, err, secrets.ErrInvalidKey)
	})
}

func TestManager_EncryptDecrypt(t *testing.T) {
	t.Parallel()

	key, err := secrets.GenerateKey()
	require.NoError(t, err)
	m, err := secrets.NewManager(key)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		for _, plain := range []string{"db-password", "", "späcial ünïcode", "a very long credential that exceeds one AES block easily"} {
			encrypted, err := m.EncryptString(plain)
			require.NoError(t, err)
			assert.NotEqual(t, plain, encrypted)

			decrypted, err := m.DecryptString(encrypted)
			require.NoError(t, err)
			assert.Equal(t, plain, decrypted)
		}
	})

	t.Run("nonces make ciphertexts unique", func(t *testing.T) {
		t.Parallel()

		a, err := m.EncryptString("same input")
		require.NoError(t, err)
		b, err := m.EncryptString("same input")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("wrong key fails authentication", func(t *testing.T) {
		t.Parallel()

		encrypted, err := m.EncryptString("db-password")
		require.NoError(t, err)

		otherKey, err := secrets.GenerateKey()
		require.NoError(t, err)
		other, err := secrets.NewManager(otherKey)
		require.NoError(t, err)

		_, err = other.DecryptString(encrypted)
		assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
	})

	t.Run("malformed ciphertext", func(t *testing.T) {
		t.Parallel()

		_, err := m.DecryptString("not base64!!!")
		assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)

		// Valid base64 but shorter than a nonce.
		_, err = m.DecryptString("c2hvcnQ=")
		assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
	})

	t.Run("Decrypt aliases DecryptString", func(t *testing.T) {
		t.Parallel()

		encrypted, err := m.EncryptString("db-password")
		require.NoError(t, err)

		plain, err := m.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, "db-password", plain)
	})
}

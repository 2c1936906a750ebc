// Package secrets encrypts and decrypts catalog credentials stored at rest.
//
// Catalog records may carry their database password encrypted; the loader
// decrypts it through the narrow Decrypt capability before building the
// connection factory. The cipher is AES-256-GCM with an HKDF-derived key,
// base64 on the wire.
//
//	m, err := secrets.NewManager(key)
//	cipherText, err := m.EncryptString("s3cret")
//	plain, err := m.DecryptString(cipherText)
//
// Manager satisfies the loader's Decrypter contract via Decrypt. The loader
// intentionally depends only on that one-method capability, so any other
// cipher suite can be swapped in without touching the loading code.
package secrets

package driven

// Cipher encrypts and decrypts credential values with a process-wide
// passphrase. Decrypt(Encrypt(x)) == x for every x.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	// Decrypt returns model.ErrDecryption when ciphertext was not produced by
	// Encrypt under the same passphrase.
	Decrypt(ciphertext string) (string, error)
}

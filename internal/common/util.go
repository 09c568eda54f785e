package common

// WipeByteArray overwrites b with zeros. It is used to drop plaintext
// passwords from memory as soon as they have been sent or hashed.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

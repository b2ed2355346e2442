package wallet

// zeroBytes overwrites b with zeros.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// withSecret runs fn with b and zeroes b once fn returns, on any path.
func withSecret(b []byte, fn func([]byte) error) error {
	defer zeroBytes(b)
	return fn(b)
}

// cloneBytes returns a copy of b that shares no memory with it.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

package fuzzyextractor

// Zeroize overwrites a secret byte buffer in place. Callers are
// responsible for invoking it once a FingerKey, master key, or recovered
// message is no longer needed; the HelperBlob itself is public and need
// not be zeroized.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

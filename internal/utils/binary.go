package utils

// sniffLength defines the maximum number of bytes inspected when detecting binary content.
const sniffLength = 8000

// IsBinary reports whether the provided byte slice appears to contain binary
// data. Detection looks for NUL bytes only; text in a non-UTF-8 single-byte
// encoding must still classify as text so it can be decoded with a fallback.
func IsBinary(data []byte) bool {
	sniffWindow := data
	if len(sniffWindow) > sniffLength {
		sniffWindow = sniffWindow[:sniffLength]
	}
	for _, byteValue := range sniffWindow {
		if byteValue == 0 {
			return true
		}
	}
	return false
}

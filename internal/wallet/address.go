package wallet

import "strings"

// Addresses are 20-byte hex identifiers in the usual 0x form. They are
// the only identity in the system, so every boundary validates them.
func IsValid(addr string) bool {
	if len(addr) != 42 || addr[0] != '0' || addr[1] != 'x' {
		return false
	}
	for _, c := range addr[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Normalize lowercases a valid address so storage keys and DB rows agree.
func Normalize(addr string) string {
	return strings.ToLower(addr)
}

package rfc3986

// isUcschar reports whether r is a ucschar of RFC 3987.
func isUcschar(r rune) bool {
	switch {
	case r >= 0xA0 && r <= 0xD7FF,
		r >= 0xF900 && r <= 0xFDCF,
		r >= 0xFDF0 && r <= 0xFFEF:
		return true
	case r >= 0x10000 && r <= 0xEFFFD:
		// every plane from 1 to 14 except its last two code points, plane 14 starts at E1000
		if r&0xFFFF >= 0xFFFE {
			return false
		}
		return r < 0xE0000 || r >= 0xE1000
	}
	return false
}

// isIprivate reports whether r is an iprivate of RFC 3987.
func isIprivate(r rune) bool {
	return r >= 0xE000 && r <= 0xF8FF ||
		r >= 0xF0000 && r <= 0xFFFFD ||
		r >= 0x100000 && r <= 0x10FFFD
}

func isQueryRune(r rune) bool { return isUcschar(r) || isIprivate(r) }

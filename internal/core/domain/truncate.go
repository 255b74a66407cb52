package domain

// TruncateEllipsis shortens s to at most max runes, replacing the tail with
// the marker so the result is exactly max runes long. Strings that already
// fit are returned unchanged. The marker never gets split: if max is smaller
// than the marker itself, the marker is cut instead of the string.
func TruncateEllipsis(s string, max int, marker string) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	markerRunes := []rune(marker)
	if max <= len(markerRunes) {
		return string(markerRunes[:max])
	}

	return string(runes[:max-len(markerRunes)]) + marker
}

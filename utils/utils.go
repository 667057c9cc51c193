package utils

import "strings"

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// TruncateRunes keeps at most max runes of str.
func TruncateRunes(str string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(str)
	if len(runes) <= max {
		return str
	}
	return string(runes[:max])
}

// SampleWithEllipsis truncates to max runes and appends "..." when
// anything was cut off.
func SampleWithEllipsis(str string, max int) string {
	truncated := TruncateRunes(str, max)
	if len(truncated) < len(str) {
		return truncated + "..."
	}
	return truncated
}

// SplitLines splits on '\n' and drops a trailing '\r' from every line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func StatusInSlice(status int, list []int) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

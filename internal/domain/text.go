package domain

// Preview lengths applied to long text fields before serialization.
const (
	TextPreviewLen = 200
	PostPreviewLen = 100
)

// Truncate cuts s to at most max runes, never splitting a character.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

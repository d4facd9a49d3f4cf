package lsbx

import "regexp"

// Length limits the API enforces on free-text fields.
const (
	MaxACHDescriptionLen         = 100
	MaxACHExternalDescriptionLen = 32
	MaxWireDescriptionLen        = 120
	MaxAccountHolderNameLen      = 22
)

var descriptionSanitizer = regexp.MustCompile(`[^A-Za-z0-9 ]`)

// SanitizeDescription strips every character outside A-Z, a-z, 0-9 and
// space, then truncates to maxLen. The API rejects punctuation in
// transfer descriptions, so this runs on every outbound description
// field.
func SanitizeDescription(value string, maxLen int) string {
	cleaned := descriptionSanitizer.ReplaceAllString(value, "")
	if maxLen > 0 && len(cleaned) > maxLen {
		cleaned = cleaned[:maxLen]
	}
	return cleaned
}

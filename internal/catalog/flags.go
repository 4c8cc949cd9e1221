package catalog

import "strings"

// GlobeFlag is shown for languages without a dedicated flag.
const GlobeFlag = "🌐"

// languageFlags is read-only after package initialisation.
var languageFlags = map[string]string{
	"en": "🇺🇸",
	"es": "🇪🇸",
	"fr": "🇫🇷",
	"de": "🇩🇪",
	"jp": "🇯🇵",
	"ja": "🇯🇵",
	"pt": "🇧🇷",
	"it": "🇮🇹",
	"ar": "🇸🇦",
}

// Flag returns the flag glyph for a language code.
func Flag(language string) string {
	if flag, ok := languageFlags[strings.ToLower(language)]; ok {
		return flag
	}
	return GlobeFlag
}

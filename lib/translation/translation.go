package translation

import (
	"github.com/leonelquinteros/gotext"
)

// Translate looks up msgID in the configured locale. Untranslated strings
// pass through unchanged, so English message IDs double as the fallback.
func Translate(msgID string, vars ...interface{}) string {
	return gotext.Get(msgID, vars...)
}

package export

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultBaseName = "scheme-card"
	maxBaseLength   = 20
)

// BaseName turns a card name into a file-safe stem: lower-case, runs of
// anything outside [a-z0-9] collapsed to one '-', at most 20 characters,
// no leading or trailing '-'.
func BaseName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}

	base := b.String()
	if len(base) > maxBaseLength {
		base = base[:maxBaseLength]
	}
	base = strings.Trim(base, "-")
	if base == "" {
		return DefaultBaseName
	}
	return base
}

func Filename(name string, f Format, now time.Time) string {
	return fmt.Sprintf("%s-%d.%s", BaseName(name), now.UnixMilli(), f.Extension())
}

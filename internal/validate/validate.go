package validate

import (
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSeason = regexp.MustCompile(`^[a-z0-9 _-]{1,32}$`)
	reRef    = regexp.MustCompile(`^drawable/[A-Za-z0-9._-]{1,128}$`)
	reDay    = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

var allowedImageExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// ID validates a record identifier (category, item, coupon, order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

// Text is a free-form required field such as a description.
func Text(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 1000 {
		return "", false
	}
	return s, true
}

// Season lowercases the tag; no fixed set of seasons is enforced.
func Season(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reSeason.MatchString(s)
}

// Money accepts a non-negative finite amount.
func Money(f float64) bool {
	return f >= 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Day checks a calendar date in YYYY-MM-DD form. Such strings sort the same
// way the dates do.
func Day(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !reDay.MatchString(s) {
		return "", false
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}

// ImageRef validates a stored logical image reference ("drawable/<name>").
func ImageRef(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reRef.MatchString(s)
}

// ImageFile checks an uploaded file name's extension.
func ImageFile(name string) bool {
	return allowedImageExt[strings.ToLower(filepath.Ext(name))]
}

package utils

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Slugify converts a title into a URL-safe slug: lowercase, alphanumerics
// kept, everything else collapsed into single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug returns base if no row in table already uses it, otherwise the
// first base-2, base-3, ... that is free.
func UniqueSlug(db *gorm.DB, table, base string) string {
	if base == "" {
		base = "untitled"
	}
	slug := base
	for i := 2; ; i++ {
		var count int64
		db.Table(table).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

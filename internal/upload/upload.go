// Package upload stores product images on local disk.
package upload

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const URLPrefix = "/uploads"

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9_-]+`)

func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// FileName builds the stored name: a millisecond timestamp, a short random
// suffix and the sanitised original base name.
func FileName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if len(base) > 40 {
		base = base[:40]
	}
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%d-%s-%s%s", now.UnixMilli(), uuid.New().String()[:8], base, ext)
}

package upload

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("photo.JPG"))
	assert.True(t, IsImage("a.webp"))
	assert.False(t, IsImage("invoice.pdf"))
	assert.False(t, IsImage("noext"))
}

func TestFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	name := FileName("../../Blue Lawn (final).PNG", now)

	assert.True(t, strings.HasPrefix(name, "1700000000123-"), name)
	assert.True(t, strings.HasSuffix(name, "-blue-lawn-final.png"), name)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")

	assert.True(t, strings.HasSuffix(FileName("###.jpg", now), "-image.jpg"))
}

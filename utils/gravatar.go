package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// GravatarURL builds the avatar URL for an email address. Retro default
// and G rating, matching what commenters saw before.
func GravatarURL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&d=retro&r=g", hex.EncodeToString(sum[:]), size)
}

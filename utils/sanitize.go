package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy   = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans user generated HTML (post and reply bodies) to prevent XSS.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// SanitizePlain strips all markup; used for titles and usernames.
func SanitizePlain(input string) string {
	return plainPolicy.Sanitize(input)
}

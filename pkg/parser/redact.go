package parser

import "regexp"

// userPathRe matches the user segment of macOS home paths, in plain paths
// and file:// URLs alike.
var userPathRe = regexp.MustCompile(`/Users/[^/\s"']+`)

// RedactUserPaths replaces user names in home-directory paths so logs can
// be shared without exposing who built them.
func RedactUserPaths(s string) string {
	return userPathRe.ReplaceAllString(s, "/Users/<redacted>")
}

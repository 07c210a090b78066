package domain

import "errors"

// ErrUnknownPlatform is returned when a project targets a platform the
// application does not support.
var ErrUnknownPlatform = errors.New("unknown platform")

// Supported publishing platforms.
const (
	PlatformTwitterThread = "Twitter Thread"
	PlatformLinkedInPost  = "LinkedIn Post"
	PlatformBlogPost      = "Blog Post"
	PlatformEmail         = "Email"
	PlatformInstagram     = "Instagram Caption"
	PlatformTikTokScript  = "TikTok Script"
	PlatformYouTubeScript = "YouTube Video Script"
)

var knownPlatforms = []string{
	PlatformTwitterThread,
	PlatformLinkedInPost,
	PlatformBlogPost,
	PlatformEmail,
	PlatformInstagram,
	PlatformTikTokScript,
	PlatformYouTubeScript,
}

// KnownPlatforms returns the supported platforms in display order.
func KnownPlatforms() []string {
	return append([]string(nil), knownPlatforms...)
}

// IsKnownPlatform reports whether name is a supported platform.
func IsKnownPlatform(name string) bool {
	for _, p := range knownPlatforms {
		if p == name {
			return true
		}
	}
	return false
}

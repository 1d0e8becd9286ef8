package invite

import (
	"net/url"
	"strings"
)

// Link is a redeemable invite.
type Link struct {
	// Path is the invite path returned by the backend.
	Path string
	// URL is Path resolved against the client origin.
	URL string
	// Token is the invite token carried by Path, when present.
	Token string
}

// ComposeLink joins origin and path with exactly one slash. An absolute path
// or an empty origin leaves path unchanged.
func ComposeLink(origin, path string) string {
	if origin == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(origin, "/") + path
}

// TokenFromURL returns the token query parameter of an invite link, or "".
// raw may be a full URL or a path such as "/register?token=abc".
func TokenFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Query().Get("token")
}

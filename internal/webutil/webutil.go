// Package webutil holds small helpers for turning venue/session records into
// displayable URL fragments: path slugs and website domains.
package webutil

import (
	"net/url"
	"strings"
)

// Slugify converts a display name into a URL path segment. Spaces become
// hyphens first, then anything that is not an ASCII letter or hyphen is
// stripped, then the result is lower-cased. The ordering matters: converting
// spaces after stripping would glue multi-word names together.
func Slugify(text string) string {
	replaced := strings.ReplaceAll(text, " ", "-")
	var b strings.Builder
	b.Grow(len(replaced))
	for _, r := range replaced {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// ExtractDomain returns the host part of a http:// or https:// URL, i.e. the
// substring between the scheme and the first slash (or the end of the
// string). Inputs without a recognizable scheme are returned unchanged; this
// is a deliberate best-effort fallback, not an error.
func ExtractDomain(rawURL string) string {
	rest, ok := strings.CutPrefix(rawURL, "https://")
	if !ok {
		rest, ok = strings.CutPrefix(rawURL, "http://")
	}
	if !ok {
		return rawURL
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		return rest[:i]
	}
	return rest
}

// Websites is the pair of display strings for a venue and its session.
// Session is empty when the two links collapsed into one.
type Websites struct {
	Venue   string
	Session string
}

// ResolveWebsites reconciles a venue's website against a session's website
// so that the two are never shown as duplicate links:
//
//   - identical URLs collapse to a single venue link,
//   - a session URL beneath the venue's domain keeps its first path segment
//     (e.g. example.com plus example.com/events/1 yields example.com/events),
//   - different domains are shown as two distinct links.
//
// A session URL that shares the venue's domain but cannot be parsed falls
// back to the two bare domains.
func ResolveWebsites(venueURL, sessionURL string) Websites {
	venueDomain := ExtractDomain(venueURL)
	sessionDomain := ExtractDomain(sessionURL)
	if venueDomain != sessionDomain {
		return Websites{Venue: venueDomain, Session: sessionDomain}
	}
	if venueURL == sessionURL {
		return Websites{Venue: venueDomain}
	}
	u, err := url.Parse(sessionURL)
	if err != nil {
		return Websites{Venue: venueDomain, Session: sessionDomain}
	}
	first := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")[0]
	return Websites{Venue: venueDomain, Session: sessionDomain + "/" + first}
}

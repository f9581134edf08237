// Package link turns deep-link addresses into search forward requests.
// It has no side effects; dispatching the result is left to the caller.
package link

import (
	"net/url"
	"strings"
)

// SearchAction is the capability the host application registers for search.
const SearchAction = "eu.kanade.tachiyomi.ANIMESEARCH"

// ForwardRequest is the message handed to the host application
type ForwardRequest struct {
	Action string `json:"action"`
	Query  string `json:"query"`
	Filter string `json:"filter"`
}

// ParseRaw parses a raw invocation argument into an address.
// It returns nil when the argument is empty or is not a valid URL.
func ParseRaw(raw string) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}

// Segments returns the decoded, non-empty path segments of u.
func Segments(u *url.URL) []string {
	if u == nil {
		return nil
	}

	var segments []string
	for _, part := range strings.Split(u.EscapedPath(), "/") {
		if part == "" {
			continue
		}
		decoded, err := url.PathUnescape(part)
		if err != nil {
			decoded = part
		}
		segments = append(segments, decoded)
	}
	return segments
}

// Parse builds a forward request from u using the search action.
// The second return value is false when u is nil or has fewer than two
// path segments. Segments past the identifier are ignored.
func Parse(u *url.URL, filter string) (ForwardRequest, bool) {
	return ParseAction(u, SearchAction, filter)
}

// ParseAction is Parse with an explicit action.
func ParseAction(u *url.URL, action, filter string) (ForwardRequest, bool) {
	segments := Segments(u)
	if len(segments) <= 1 {
		return ForwardRequest{}, false
	}

	category, identifier := segments[0], segments[1]
	return ForwardRequest{
		Action: action,
		Query:  category + ":" + identifier,
		Filter: filter,
	}, true
}

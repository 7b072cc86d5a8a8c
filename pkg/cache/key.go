package cache

import (
	"sort"
	"strings"
)

// KeySeparator joins the segments of a namespaced key.
const KeySeparator = ":"

// Key joins segments into one deterministic key.
// Surrounding separators and blanks are trimmed and empty segments dropped.
//
// Example:
//
//	Key("trading", "positions", "acct-7") // "trading:positions:acct-7"
func Key(parts ...string) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), KeySeparator)
		if p != "" {
			segs = append(segs, p)
		}
	}
	return strings.Join(segs, KeySeparator)
}

// KeyWithParams appends params to base as sorted name=value segments, so
// the same parameter set always maps to the same key.
//
// Example:
//
//	KeyWithParams("quotes", map[string]string{"venue": "x", "sym": "ETH"})
//	// "quotes:sym=ETH:venue=x"
func KeyWithParams(base string, params map[string]string) string {
	if len(params) == 0 {
		return Key(base)
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+1)
	parts = append(parts, base)
	for _, name := range names {
		parts = append(parts, name+"="+params[name])
	}
	return Key(parts...)
}

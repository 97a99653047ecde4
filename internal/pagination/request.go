package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseRequest builds a Request from raw query values. Missing, malformed or
// non-positive values fall back to defaults; limit is capped at MaxLimit.
func ParseRequest(rawPage, rawLimit string) Request {
	req := Request{Page: DefaultPage, Limit: DefaultLimit}

	if p, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil && p >= 1 {
		req.Page = p
	}
	if l, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && l >= 1 {
		req.Limit = min(l, MaxLimit)
	}
	return req
}

// Package urlx implements the URL parsing and discovery collaborator the
// HTML parser consumes: a structured URL type, a tolerant parser, an
// in-text multi-URL finder, and a dedup set. None of this is meant to be a
// general-purpose URL library — it exposes exactly the fields an HTML
// normalizer needs and nothing more.
package urlx

import (
	"net/url"
	"strings"
)

// Flag bits record properties a URL's caller (typically the HTML
// normalizer) sets after discovering it: whether it came from an image
// attribute, whether it was found inside another URL's query string.
type Flag uint32

const (
	FlagImage Flag = 1 << iota
	FlagQuery
)

// URL is the structured result of parsing a URL-shaped string.
type URL struct {
	Protocol string
	String   string // the full, possibly-rewritten URL string
	Host     string
	Query    string
	UserLen  int
	DataLen  int // length of path+query+fragment beyond the host
	Flags    Flag
	Count    int
}

// Parse parses raw into a URL, tolerating the loose forms mail HTML
// produces (protocol-relative, bare host, mailto:).
func Parse(raw string) (*URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errEmpty
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" && !strings.HasPrefix(raw, "//") {
		// Bare host/path with no scheme: assume http, matching mail
		// clients' traditional leniency.
		u, err = url.Parse("http://" + raw)
		if err != nil {
			return nil, err
		}
	}

	host := u.Hostname()
	if host == "" && u.Scheme != "mailto" {
		return nil, errNoHost
	}

	data := u.Path
	if u.RawQuery != "" {
		data += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		data += "#" + u.Fragment
	}

	userLen := 0
	if u.User != nil {
		userLen = len(u.User.Username())
	} else if u.Scheme == "mailto" {
		// mailto:user@host parses as opaque data, not as userinfo.
		if at := strings.IndexByte(u.Opaque, '@'); at >= 0 {
			userLen = at
		}
	}

	out := &URL{
		Protocol: u.Scheme,
		String:   u.String(),
		Host:     host,
		Query:    u.RawQuery,
		UserLen:  userLen,
		DataLen:  len(data),
		Count:    1,
	}
	return out, nil
}

type parseError string

func (e parseError) Error() string { return string(e) }

const (
	errEmpty  = parseError("urlx: empty input")
	errNoHost = parseError("urlx: no host")
)

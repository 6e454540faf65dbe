package urlx

import "strings"

// ResolveAgainstBase rewrites href against base the way legacy mail HTML
// renderers do: a value containing "://" is left alone, a leading-slash
// path (but not "//") is rebuilt against the base's protocol and host, and
// anything else, "//"-prefixed values included, is prefixed with the
// base's full string
// (plus an inserted "/" when the base itself carries no path). data: URIs
// are never rewritten — they carry no host to resolve against and are
// handled by the image pipeline instead.
func ResolveAgainstBase(href string, base *URL) string {
	if base == nil || href == "" {
		return href
	}
	if strings.Contains(href, "://") {
		return href
	}
	if strings.HasPrefix(strings.ToLower(href), "data:") {
		return href
	}
	if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
		return base.Protocol + "://" + base.Host + "/" + strings.TrimPrefix(href, "/")
	}
	if base.DataLen == 0 {
		return base.String + "/" + href
	}
	return base.String + href
}

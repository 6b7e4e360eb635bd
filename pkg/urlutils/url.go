// Package urlutils provides helpers for checking the site URLs feed links are built from.
package urlutils

import (
	"net/url"
	"strings"
)

// IsValidURL checks if a URL is valid
func IsValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// IsHTTPURL reports whether urlStr is an absolute http or https URL.
func IsHTTPURL(urlStr string) bool {
	if !IsValidURL(urlStr) {
		return false
	}
	u, _ := url.Parse(urlStr)
	return u.Scheme == "http" || u.Scheme == "https"
}

// IsSitePath reports whether p can be appended to a site URL: empty, or starting with a slash.
func IsSitePath(p string) bool {
	return p == "" || strings.HasPrefix(p, "/")
}

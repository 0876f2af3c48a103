package helpers

import (
	"net/url"
	"path"
)

// UrlJoin appends path elements to a base URL. With no elements the base is
// returned unchanged rather than gaining a trailing slash.
func UrlJoin(base string, elements ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if len(elements) > 0 {
		elements = append([]string{u.Path}, elements...)
		u.Path = path.Join(elements...)
	}
	return u.String(), nil
}

func IsValidHttpUrl(rawUrl string) bool {
	u, err := url.ParseRequestURI(rawUrl)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

package viewkit

import (
	"net/http"
	"net/url"
)

type redirectResponse struct {
	url  string
	code int
}

// Render performs the redirect, carrying over the request's query string when
// the target has none of its own. Canonicalizing redirects (extensioned to
// extensionless view URLs) must not drop query parameters.
func (rr redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	target := rr.url
	if req.URL.RawQuery != "" {
		if u, err := url.Parse(target); err == nil && u.RawQuery == "" {
			u.RawQuery = req.URL.RawQuery
			target = u.String()
		}
	}
	http.Redirect(w, req, target, rr.code)
	return nil
}

// Redirect creates a redirect response with status 303 (See Other).
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectPermanent creates a 301 redirect response. Used for URL
// canonicalization, where clients should remember the new location.
func RedirectPermanent(url string) Response {
	return redirectResponse{url: url, code: http.StatusMovedPermanently}
}

// RedirectWithCode creates a redirect response with a specific status code.
// Valid codes are 301, 302, 303, 307 and 308.
func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

type redirectBackResponse struct {
	fallback string
	code     int
}

func (rr redirectBackResponse) Render(w http.ResponseWriter, req *http.Request) error {
	target := rr.fallback
	if referer := req.Header.Get("Referer"); referer != "" && isValidRedirectURL(referer, req) {
		target = referer
	}
	http.Redirect(w, req, target, rr.code)
	return nil
}

// RedirectBack redirects to the referrer, or to fallback when there is none.
// Only same-host referrers are honored.
func RedirectBack(fallback string) Response {
	return redirectBackResponse{fallback: fallback, code: http.StatusSeeOther}
}

// isValidRedirectURL checks if a URL is safe to redirect to. Empty host means
// a relative URL, which is always same-host.
func isValidRedirectURL(urlStr string, r *http.Request) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return parsed.Host == "" || parsed.Host == r.Host
}

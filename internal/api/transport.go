package api

import (
	"context"
	"net/http"
	"strings"
)

type credentialsKey struct{}

// WithCredentials returns a context carrying the backend cookies to attach
// to every call made with it.
func WithCredentials(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, credentialsKey{}, cookies)
}

func credentialsFrom(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(credentialsKey{}).([]*http.Cookie)
	return cookies
}

// CredentialKey identifies the credentials in ctx without interpreting them.
// Anonymous contexts share the empty key.
func CredentialKey(ctx context.Context) string {
	cookies := credentialsFrom(ctx)
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, ";")
}

// ForwardCredentials copies the named cookies of the incoming request into
// the request context so the client transport can replay them.
func ForwardCredentials(names []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cookies []*http.Cookie
			for _, name := range names {
				c, err := r.Cookie(name)
				if err != nil {
					continue
				}
				cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
			}
			if len(cookies) > 0 {
				r = r.WithContext(WithCredentials(r.Context(), cookies))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// credentialTransport attaches the context's credentials to outgoing requests.
type credentialTransport struct {
	next http.RoundTripper
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cookies := credentialsFrom(req.Context())
	if len(cookies) == 0 {
		return t.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return t.next.RoundTrip(req)
}

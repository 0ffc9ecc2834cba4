package storefront

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.uber.org/zap"
)

// newAPIProxy forwards /api to the backend so its session cookie is scoped
// to the storefront's origin.
func newAPIProxy(base string, log *zap.Logger) (http.Handler, error) {
	target, err := url.Parse(base)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
	}
	proxy.ModifyResponse = func(resp *http.Response) error {
		cookies := resp.Cookies()
		if len(cookies) == 0 {
			return nil
		}
		resp.Header.Del("Set-Cookie")
		for _, c := range cookies {
			resp.Header.Add("Set-Cookie", localCookie(c).String())
		}
		return nil
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Warn("error proxying to backend", zap.String("path", r.URL.Path), zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
	}
	return proxy, nil
}

// localCookie rescopes a backend cookie to the storefront host.
func localCookie(c *http.Cookie) *http.Cookie {
	out := *c
	out.Domain = ""
	if out.Path == "" {
		out.Path = "/"
	}
	return &out
}

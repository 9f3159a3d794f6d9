package locale

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ginKey = "locale"

type ctxKey struct{}

// WithLocale stores the active locale on ctx.
func WithLocale(ctx context.Context, code Code) context.Context {
	return context.WithValue(ctx, ctxKey{}, code)
}

// FromContext returns the locale stored by WithLocale.
func FromContext(ctx context.Context) (Code, bool) {
	code, ok := ctx.Value(ctxKey{}).(Code)
	return code, ok && code != ""
}

// Current returns the request locale, falling back to the registry default.
func Current(c *gin.Context, reg *Registry) Code {
	if v, ok := c.Get(ginKey); ok {
		if code, ok := v.(Code); ok {
			return code
		}
	}
	if code, ok := FromContext(c.Request.Context()); ok {
		return code
	}
	return reg.DefaultCode()
}

// Middleware applies the resolver to every request. The path is resolved
// in its escaped form so encoded delimiters survive into the redirect. Redirects set the
// NEXT_LOCALE cookie for a year at the site root and stop the chain.
// Prefixed page paths continue with the locale stored on the context.
func Middleware(res *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(CookieName)
		d := res.Resolve(c.Request.URL.EscapedPath(), c.Request.URL.Query(), cookie, c.GetHeader("Accept-Language"))

		if d.Action == Redirect {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, string(d.Locale), CookieMaxAge, "/", "", false, false)
			c.Redirect(http.StatusTemporaryRedirect, d.Target)
			c.Abort()
			return
		}

		if d.Locale != "" {
			c.Set(ginKey, d.Locale)
			c.Request = c.Request.WithContext(WithLocale(c.Request.Context(), d.Locale))
		}
		c.Next()
	}
}

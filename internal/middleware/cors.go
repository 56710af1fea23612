package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods  = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders  = "Authorization, Content-Type, Accept, Origin, X-Requested-With, X-Request-ID"
	corsExposeHeaders = "Content-Disposition, X-Request-ID"
)

// originMatcher accepts exact origins, "*" and single-level wildcard
// subdomains such as "https://*.fynix.digital".
type originMatcher struct {
	any      bool
	exact    map[string]struct{}
	suffixes [][2]string
}

func newOriginMatcher(origins []string) originMatcher {
	m := originMatcher{exact: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		switch {
		case o == "*":
			m.any = true
		case strings.Contains(o, "://*."):
			scheme, host, _ := strings.Cut(o, "://*")
			m.suffixes = append(m.suffixes, [2]string{scheme + "://", host})
		default:
			m.exact[o] = struct{}{}
		}
	}
	return m
}

func (m originMatcher) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if m.any {
		return true
	}
	if _, ok := m.exact[origin]; ok {
		return true
	}
	for _, s := range m.suffixes {
		rest, ok := strings.CutPrefix(origin, s[0])
		if !ok || !strings.HasSuffix(rest, s[1]) {
			continue
		}
		if label := strings.TrimSuffix(rest, s[1]); label != "" && !strings.Contains(label, ".") {
			return true
		}
	}
	return false
}

// CORS returns middleware that allows the configured origins and answers
// preflight requests with 204. Export downloads need Content-Disposition
// exposed to the browser.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	match := newOriginMatcher(allowedOrigins)
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		c.Header("Vary", "Origin")
		if match.allows(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Expose-Headers", corsExposeHeaders)
		}

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Header("Access-Control-Max-Age", "86400")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

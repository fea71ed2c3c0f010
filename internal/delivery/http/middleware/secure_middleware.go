package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// NewSecure adds security headers. Development relaxes the host and SSL checks.
func NewSecure(isDevelopment bool) func(next http.Handler) http.Handler {
	s := secure.New(secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	})
	return s.Handler
}

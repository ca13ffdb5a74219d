package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/you/shopfront/domain"
)

// SessionMW guards routes that require a signed-in user.
type SessionMW struct {
	session   domain.SessionReader
	loginPath string
}

// NewSessionMW creates new session middleware
func NewSessionMW(session domain.SessionReader, loginPath string) *SessionMW {
	return &SessionMW{session: session, loginPath: loginPath}
}

// RequireSession returns the guard middleware function. While the session
// store is still resolving the persisted token it answers 503 instead of
// redirecting, so a slow startup never bounces a user who is actually signed
// in. Once resolved, unauthenticated requests get exactly one redirect to the
// login page carrying the original URI in the next parameter.
func (mw *SessionMW) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !mw.session.Ready() {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "pending"})
			c.Abort()
			return
		}

		if !mw.session.Authenticated() {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, mw.loginPath+"?next="+next)
			c.Abort()
			return
		}

		// The verified claim is read but not enforced here; unverified
		// accounts keep access to guarded routes.
		_ = mw.session.Verified()

		if claims, ok := mw.session.Claims(); ok {
			c.Set("user_email", claims.Email)
		}
		c.Next()
	}
}

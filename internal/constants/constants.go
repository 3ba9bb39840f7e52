package constants

const (
	// SessionCookieName is the name of the session cookie issued at signin.
	SessionCookieName = "relatives_session"

	// ContextKeyUserID is the session and Gin context key holding the
	// authenticated user's id.
	ContextKeyUserID = "user_id"

	// SessionMaxAge is the session lifetime in seconds (7 days).
	SessionMaxAge = 86400 * 7
)

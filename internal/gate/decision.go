// internal/gate/decision.go
package gate

// Outcome represents an access decision outcome
type Outcome int

const (
	// Allow indicates the request passes through unmodified
	Allow Outcome = iota

	// RedirectToLogin sends the requester to the locale's login page
	RedirectToLogin

	// RedirectToUnauthorized sends the requester to the locale's unauthorized page
	RedirectToUnauthorized

	// RedirectToLocale canonicalizes the path under the preferred locale
	RedirectToLocale
)

// String returns the outcome label used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToUnauthorized:
		return "redirect_unauthorized"
	case RedirectToLocale:
		return "redirect_locale"
	default:
		return "unknown"
	}
}

// Decision is the single, terminal result of evaluating a request. Exactly
// one decision is produced per gated request.
type Decision struct {
	// Outcome is the decision kind.
	Outcome Outcome

	// Locale is the effective locale the decision was made under.
	Locale string

	// Location is the redirect target path. Empty for Allow. The query
	// string is appended by the middleware, not here.
	Location string
}

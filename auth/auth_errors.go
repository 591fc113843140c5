package auth

import "errors"

var (
	// InvalidCredentialsErr is returned for any failed identification,
	// whether the identifier is unknown or the secret is wrong. Callers must
	// render it as a uniform access denied.
	InvalidCredentialsErr = errors.New("invalid credentials")

	// InvalidCodeErr is returned when no unconsumed attempt matches a
	// presented code. It never reveals whether the user exists or a code was
	// ever issued.
	InvalidCodeErr = errors.New("invalid verification code")

	// UnauthenticatedErr covers a missing bearer token and a token that does
	// not verify.
	UnauthenticatedErr = errors.New("missing or invalid bearer token")

	// ForbiddenErr means no permission record exists for the caller's role
	// and the requested resource.
	ForbiddenErr = errors.New("no permission for resource")

	// InvalidActionErr signals a route configured with an action outside the
	// enumeration - a server misconfiguration, not a user denial.
	InvalidActionErr = errors.New("unrecognised action")
)

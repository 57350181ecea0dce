package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// DecisionKind tags the outcome of an access check.
type DecisionKind int

const (
	// Allow lets the request proceed.
	Allow DecisionKind = iota
	// RedirectLogin sends an anonymous caller to the login page with a
	// return path.
	RedirectLogin
	// RedirectResource sends an unauthorized caller to the resource's
	// canonical view instead of an error page.
	RedirectResource
)

// Decision is the tagged result of an access check. Target is only set for
// RedirectResource.
type Decision struct {
	Kind   DecisionKind
	Target string
}

// Allowed returns the pass-through decision.
func Allowed() Decision {
	return Decision{Kind: Allow}
}

// ToLogin returns the redirect-to-login decision.
func ToLogin() Decision {
	return Decision{Kind: RedirectLogin}
}

// ToResource returns a redirect to the given canonical path.
func ToResource(path string) Decision {
	return Decision{Kind: RedirectResource, Target: path}
}

// Apply translates a Decision into the HTTP response. It returns true when
// the response has been written and the handler must stop.
func (d Decision) Apply(c *fiber.Ctx) (bool, error) {
	switch d.Kind {
	case RedirectLogin:
		return true, RedirectToLogin(c)
	case RedirectResource:
		return true, c.Redirect(d.Target, fiber.StatusFound)
	default:
		return false, nil
	}
}

// AuthorDecision checks resource ownership: non-authors are redirected to the
// resource's canonical path, never shown an error page.
func AuthorDecision(requesterID, authorID uint, resourcePath string) Decision {
	if requesterID == 0 {
		return ToLogin()
	}
	if requesterID != authorID {
		return ToResource(resourcePath)
	}
	return Allowed()
}

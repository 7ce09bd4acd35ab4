// Package domain defines the entitlement decision surface: can this
// subscription use this feature right now.
package domain

// Denial reasons are short machine-checkable strings the web layer maps
// to rejection responses.
const (
	ReasonFeatureNotFound   = "Feature not found"
	ReasonFeatureNotInPlan  = "Feature not available in current plan"
	ReasonQuotaExceeded     = "Quota exceeded"
	ReasonRateLimitExceeded = "Rate limit exceeded"
)

// FeatureAccess is the engine's output, constructed fresh per decision.
// Remaining is set only for metered feature types.
type FeatureAccess struct {
	Allowed   bool   `json:"allowed"`
	Remaining *int64 `json:"remaining,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func Allow() FeatureAccess {
	return FeatureAccess{Allowed: true}
}

func AllowRemaining(remaining int64) FeatureAccess {
	return FeatureAccess{Allowed: true, Remaining: &remaining}
}

func Deny(reason string) FeatureAccess {
	return FeatureAccess{Allowed: false, Reason: reason}
}

func DenyRemaining(remaining int64, reason string) FeatureAccess {
	return FeatureAccess{Allowed: false, Remaining: &remaining, Reason: reason}
}

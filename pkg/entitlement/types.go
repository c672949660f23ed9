package entitlement

// Feature represents a plan-specific capability surfaced to the user.
type Feature string

const (
	FeatureBasicAnalytics    Feature = "basic_analytics"
	FeatureAdvancedAnalytics Feature = "advanced_analytics"
	FeatureCustomBranding    Feature = "custom_branding"
	FeatureAPIAccess         Feature = "api_access"
	FeatureBulkMinting       Feature = "bulk_minting"
	FeaturePrioritySupport   Feature = "priority_support"
	FeatureDedicatedManager  Feature = "dedicated_manager"
)

const (
	// Unlimited indicates no cap for a plan limit (-1 chosen for SQL compatibility)
	Unlimited int64 = -1
)

// MicroAlgos represents an amount in the ledger's smallest currency unit.
type MicroAlgos uint64

// Algos converts whole Algos to MicroAlgos.
func Algos(n uint64) MicroAlgos {
	return MicroAlgos(n * 1_000_000)
}

// ToAlgos returns the amount as a floating-point Algo value for display.
func (m MicroAlgos) ToAlgos() float64 {
	return float64(m) / 1_000_000
}

// DenyReason explains why a resource creation was not allowed.
type DenyReason string

const (
	DenyNoActiveSubscription DenyReason = "no_active_subscription"
	DenyUnknownPlan          DenyReason = "unknown_plan"
	DenyLimitReached         DenyReason = "limit_reached"
)

// Decision is the result of an entitlement check. The check is advisory from
// the client's point of view: the authoritative resource set lives on the
// ledger, so any trusted backend enforcing the same limit must re-validate.
type Decision struct {
	Allowed   bool
	Remaining int64 // Unlimited when the plan has no cap
	Reason    DenyReason
}

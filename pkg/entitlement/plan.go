package entitlement

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Plan describes a subscription tier and its resource limits.
// Catalog values are fixed constants: changing them is a new deployment,
// not a runtime operation.
type Plan struct {
	ID           string
	Name         string
	Price        MicroAlgos
	MemberLimit  int64 // -1 represents unlimited
	ProgramLimit int64 // -1 represents unlimited
	Features     []Feature
	Recommended  bool // display hint only
}

// Catalog is an immutable plan lookup table built at process start.
type Catalog struct {
	plans map[string]Plan
	order []string // plan IDs in ascending price order
}

// NewCatalog builds a catalog from the given plans.
// Returns ErrInvalidCatalog for empty catalogs, duplicate IDs, or limits
// below the Unlimited sentinel.
func NewCatalog(plans ...Plan) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, errors.Join(ErrInvalidCatalog, errors.New("at least one plan is required"))
	}

	byID := make(map[string]Plan, len(plans))
	for _, plan := range plans {
		if plan.ID == "" {
			return nil, errors.Join(ErrInvalidCatalog, errors.New("plan ID is required"))
		}
		if _, exists := byID[plan.ID]; exists {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("duplicate plan ID %q", plan.ID))
		}
		if plan.MemberLimit < Unlimited || plan.ProgramLimit < Unlimited {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("plan %q has invalid limits", plan.ID))
		}
		plan.Features = slices.Clone(plan.Features)
		byID[plan.ID] = plan
	}

	order := make([]string, 0, len(byID))
	for id := range byID {
		order = append(order, id)
	}
	slices.SortFunc(order, func(a, b string) int {
		if byID[a].Price != byID[b].Price {
			if byID[a].Price < byID[b].Price {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})

	return &Catalog{plans: byID, order: order}, nil
}

// MustCatalog works like NewCatalog but panics on invalid configuration.
// Misconfigured catalogs should prevent startup rather than cause runtime errors.
func MustCatalog(plans ...Plan) *Catalog {
	c, err := NewCatalog(plans...)
	if err != nil {
		panic(fmt.Sprintf("entitlement: invalid plan catalog: %v", err))
	}
	return c
}

// Get returns the plan with the given ID.
func (c *Catalog) Get(id string) (Plan, bool) {
	plan, ok := c.plans[id]
	if !ok {
		return Plan{}, false
	}
	plan.Features = slices.Clone(plan.Features)
	return plan, true
}

// List returns all plans in canonical display order (ascending price).
func (c *Catalog) List() []Plan {
	out := make([]Plan, 0, len(c.order))
	for _, id := range c.order {
		plan := c.plans[id]
		plan.Features = slices.Clone(plan.Features)
		out = append(out, plan)
	}
	return out
}

// DefaultCatalog returns the platform's built-in subscription tiers.
func DefaultCatalog() *Catalog {
	return MustCatalog(
		Plan{
			ID:           "basic",
			Name:         "Basic",
			Price:        Algos(10),
			MemberLimit:  100,
			ProgramLimit: 5,
			Features: []Feature{
				FeatureBasicAnalytics,
			},
		},
		Plan{
			ID:           "pro",
			Name:         "Pro",
			Price:        Algos(25),
			MemberLimit:  1000,
			ProgramLimit: 20,
			Recommended:  true,
			Features: []Feature{
				FeatureBasicAnalytics,
				FeatureAdvancedAnalytics,
				FeatureCustomBranding,
				FeatureAPIAccess,
				FeaturePrioritySupport,
			},
		},
		Plan{
			ID:           "enterprise",
			Name:         "Enterprise",
			Price:        Algos(100),
			MemberLimit:  Unlimited,
			ProgramLimit: Unlimited,
			Features: []Feature{
				FeatureBasicAnalytics,
				FeatureAdvancedAnalytics,
				FeatureCustomBranding,
				FeatureAPIAccess,
				FeatureBulkMinting,
				FeaturePrioritySupport,
				FeatureDedicatedManager,
			},
		},
	)
}

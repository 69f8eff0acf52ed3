// FILE: internal/constant/plans.go
package constant

// Plan describes one subscription tier: its display name, the number of CV
// records an agency may create per calendar month, and the template ids the
// tier unlocks.
type Plan struct {
	Key       string
	Name      string
	CvLimit   int
	Templates []string
}

const (
	PlanFree       = "free"
	PlanStarter    = "starter"
	PlanGrowth     = "growth"
	PlanEnterprise = "enterprise"
)

// TemplateIds is the full set of CV template identifiers the product ships.
// Each tier unlocks a subset; only enterprise gets all of them.
var TemplateIds = []string{
	"classic",
	"desert",
	"emerald",
	"royal",
	"sunrise",
	"slate",
	"ruby",
	"midnight",
	"ocean",
	"carbon",
}

var plans = map[string]Plan{
	PlanFree:    {Key: PlanFree, Name: "Free", CvLimit: 3, Templates: []string{"classic"}},
	PlanStarter: {Key: PlanStarter, Name: "Starter", CvLimit: 300, Templates: []string{"classic", "desert", "emerald", "ruby"}},
	PlanGrowth: {Key: PlanGrowth, Name: "Growth", CvLimit: 700,
		Templates: []string{"classic", "desert", "emerald", "royal", "sunrise", "slate", "ruby", "ocean"}},
	PlanEnterprise: {Key: PlanEnterprise, Name: "Scale", CvLimit: 1500, Templates: TemplateIds},
}

// PlanByKey returns the plan for key and whether it exists.
func PlanByKey(key string) (Plan, bool) {
	p, ok := plans[key]
	return p, ok
}

// Plans returns the full catalog keyed by plan key.
func Plans() map[string]Plan {
	out := make(map[string]Plan, len(plans))
	for k, v := range plans {
		out[k] = v
	}
	return out
}

// IsKnownTemplate reports whether id is one of the shipped template ids.
func IsKnownTemplate(id string) bool {
	for _, t := range TemplateIds {
		if t == id {
			return true
		}
	}
	return false
}

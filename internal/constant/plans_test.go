// FILE: internal/constant/plans_test.go
package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCatalog(t *testing.T) {
	free, ok := PlanByKey(PlanFree)
	require.True(t, ok)
	assert.Equal(t, "Free", free.Name)
	assert.Equal(t, 3, free.CvLimit)
	assert.Equal(t, []string{"classic"}, free.Templates)

	starter, ok := PlanByKey(PlanStarter)
	require.True(t, ok)
	assert.Equal(t, "Starter", starter.Name)
	assert.Equal(t, 300, starter.CvLimit)
	assert.Equal(t, []string{"classic", "desert", "emerald", "ruby"}, starter.Templates)

	growth, ok := PlanByKey(PlanGrowth)
	require.True(t, ok)
	assert.Equal(t, "Growth", growth.Name)
	assert.Equal(t, 700, growth.CvLimit)
	assert.Equal(t,
		[]string{"classic", "desert", "emerald", "royal", "sunrise", "slate", "ruby", "ocean"},
		growth.Templates)

	enterprise, ok := PlanByKey(PlanEnterprise)
	require.True(t, ok)
	assert.Equal(t, "Scale", enterprise.Name)
	assert.Equal(t, 1500, enterprise.CvLimit)
	assert.Equal(t, TemplateIds, enterprise.Templates)

	_, ok = PlanByKey("legacy-gold")
	assert.False(t, ok)
}

func TestTemplateIds(t *testing.T) {
	assert.Len(t, TemplateIds, 10)
	for _, id := range TemplateIds {
		assert.True(t, IsKnownTemplate(id), id)
	}
	assert.False(t, IsKnownTemplate("modern"))

	// Every plan grant must point at a shipped template.
	for key, plan := range Plans() {
		for _, id := range plan.Templates {
			assert.True(t, IsKnownTemplate(id), "%s grants unknown template %s", key, id)
		}
	}
}

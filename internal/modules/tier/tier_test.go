package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownTiers(t *testing.T) {
	basic := Resolve(Basic)
	assert.Equal(t, "Lojista B2B", basic.Label)
	assert.Equal(t, []CategoryID{CategoryProfessional, CategoryMaintenance}, basic.Allowed)

	assert.True(t, basic.Allows(CategoryProfessional))
	assert.False(t, basic.Allows(CategoryTreatment))
	assert.True(t, Resolve(VIP).Allows(CategoryExclusive))
}

func TestResolve_UnknownFallsBackToBasic(t *testing.T) {
	assert.Equal(t, Resolve(Basic), Resolve("nonexistent_tier"))
	assert.Equal(t, Resolve(Basic), Resolve(""))

	_, ok := Lookup("nonexistent_tier")
	assert.False(t, ok)
}

func TestTiersAreMonotonic(t *testing.T) {
	tiers := All()
	require.Len(t, tiers, 3)
	assert.Equal(t, []ID{Basic, Premium, VIP}, []ID{tiers[0].ID, tiers[1].ID, tiers[2].ID})

	for i := 1; i < len(tiers); i++ {
		wider, narrower := tiers[i], tiers[i-1]
		for _, c := range narrower.Allowed {
			assert.Truef(t, wider.Allows(c), "%s should allow %s like %s does", wider.ID, c, narrower.ID)
		}
	}
}

func TestRegistryIsExhaustive(t *testing.T) {
	require.NoError(t, check())
	for _, tr := range All() {
		for _, c := range tr.Allowed {
			assert.True(t, KnownCategory(c))
		}
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	cats := Categories()
	cats[0].Name = "changed"
	assert.Equal(t, "Linha Profissional", Categories()[0].Name)
}

package quotes

import (
	"testing"

	"github.com/megamarcio/bhph-engine/internal/financing"
	"github.com/megamarcio/bhph-engine/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDeal() financing.Deal {
	return financing.Deal{
		Vehicle:          testutil.Vehicle(),
		DownPayment:      33000,
		Installments:     12,
		InstallmentValue: 3516,
		InterestRate:     3,
	}
}

func TestMemoryRepositorySave(t *testing.T) {
	repo := NewMemoryRepository()

	first, err := repo.Save(Quote{Deal: sampleDeal(), Origin: financing.OriginSuggested, Finalized: true})
	require.NoError(t, err)
	assert.Equal(t, "Q-0001", first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := repo.Save(Quote{Deal: sampleDeal(), Origin: financing.OriginOperatorOverride, Finalized: true})
	require.NoError(t, err)
	assert.Equal(t, "Q-0002", second.ID)

	listed := repo.List()
	require.Len(t, listed, 2)
	assert.Equal(t, first.ID, listed[0].ID)
	assert.Equal(t, second.ID, listed[1].ID)
}

func TestMemoryRepositoryKeepsProvidedID(t *testing.T) {
	repo := NewMemoryRepository()

	saved, err := repo.Save(Quote{ID: "Q-IMPORT", Deal: sampleDeal()})
	require.NoError(t, err)
	assert.Equal(t, "Q-IMPORT", saved.ID)
}

func TestMockCache(t *testing.T) {
	cache := NewMockCache()

	_, found := cache.Get("missing")
	assert.False(t, found)

	require.NoError(t, cache.Set("sim:v-001", `{"deal":{}}`))
	val, found := cache.Get("sim:v-001")
	assert.True(t, found)
	assert.Equal(t, `{"deal":{}}`, val)
}

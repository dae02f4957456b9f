package settings

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0644)
}

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, 60.0, s.DownPaymentPercentage)
	assert.Equal(t, 3.0, s.MonthlyInterestRate)
	assert.NoError(t, s.Validate())
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{name: "defaults", s: Settings{DownPaymentPercentage: 60, MonthlyInterestRate: 3}},
		{name: "lower bounds", s: Settings{DownPaymentPercentage: 0, MonthlyInterestRate: 0}},
		{name: "upper bounds", s: Settings{DownPaymentPercentage: 100, MonthlyInterestRate: 50}},
		{name: "percentage above 100", s: Settings{DownPaymentPercentage: 150, MonthlyInterestRate: 3}, wantErr: true},
		{name: "negative percentage", s: Settings{DownPaymentPercentage: -1, MonthlyInterestRate: 3}, wantErr: true},
		{name: "rate above 50", s: Settings{DownPaymentPercentage: 60, MonthlyInterestRate: 50.5}, wantErr: true},
		{name: "negative rate", s: Settings{DownPaymentPercentage: 60, MonthlyInterestRate: -0.1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutOfRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMonthlyRateFraction(t *testing.T) {
	s := Settings{DownPaymentPercentage: 60, MonthlyInterestRate: 3}
	assert.InDelta(t, 0.03, s.MonthlyRateFraction(), 1e-12)
}

func TestManagerUpdateRejectsOutOfRange(t *testing.T) {
	store := NewMemoryStore()
	m, err := NewManager(store, nil)
	require.NoError(t, err)

	prior := m.Get()
	got, err := m.Update(Settings{DownPaymentPercentage: 150, MonthlyInterestRate: 3})
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, prior, got, "rejected update must return the retained settings")
	assert.Equal(t, prior, m.Get(), "stored settings must be unchanged")

	// Nothing was persisted either.
	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestManagerUpdateReplacesAndPersists(t *testing.T) {
	store := NewMemoryStore()
	m, err := NewManager(store, nil)
	require.NoError(t, err)

	next := Settings{DownPaymentPercentage: 40, MonthlyInterestRate: 2.5}
	got, err := m.Update(next)
	require.NoError(t, err)
	assert.Equal(t, next, got)
	assert.Equal(t, next, m.Get())

	persisted, found, err := store.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, next, persisted)
}

func TestManagerSeedsFromStore(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Settings{DownPaymentPercentage: 35, MonthlyInterestRate: 1.5}))

	m, err := NewManager(store, nil)
	require.NoError(t, err)
	assert.Equal(t, Settings{DownPaymentPercentage: 35, MonthlyInterestRate: 1.5}, m.Get())
}

func TestManagerFallsBackOnOutOfRangePersistedSettings(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Settings{DownPaymentPercentage: 900, MonthlyInterestRate: 3}))

	m, err := NewManager(store, nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), m.Get())
}

func TestManagerLastWriterWins(t *testing.T) {
	m, err := NewManager(NewMemoryStore(), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(pct float64) {
			defer wg.Done()
			_, _ = m.Update(Settings{DownPaymentPercentage: pct, MonthlyInterestRate: 3})
		}(float64(i))
	}
	wg.Wait()

	// Whatever update landed last, the pair is one of the written pairs and
	// never a mix.
	final := m.Get()
	assert.NoError(t, final.Validate())
	assert.Equal(t, 3.0, final.MonthlyInterestRate)
	assert.GreaterOrEqual(t, final.DownPaymentPercentage, 1.0)
	assert.LessOrEqual(t, final.DownPaymentPercentage, 20.0)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bhph-settings.yaml")
	store := NewFileStore(path)

	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found, "missing file is not an error")

	want := Settings{DownPaymentPercentage: 45, MonthlyInterestRate: 2}
	require.NoError(t, store.Save(want))

	got, found, err := store.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestFileStoreSurvivesManagerRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bhph-settings.yaml")

	m1, err := NewManager(NewFileStore(path), nil)
	require.NoError(t, err)
	_, err = m1.Update(Settings{DownPaymentPercentage: 50, MonthlyInterestRate: 4})
	require.NoError(t, err)

	// A new manager on the same path sees the persisted settings.
	m2, err := NewManager(NewFileStore(path), nil)
	require.NoError(t, err)
	assert.Equal(t, Settings{DownPaymentPercentage: 50, MonthlyInterestRate: 4}, m2.Get())
}

func TestFileStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bhph-settings.yaml")
	require.NoError(t, writeFile(path, "downPaymentPercentage: [not a number"))

	_, _, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

// Package settings holds the dealership-wide BHPH financing settings: the
// suggested down payment percentage and the monthly interest rate. The pair
// is validated and replaced as a unit so concurrent editors can never leave
// a half-updated configuration behind.
package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/megamarcio/bhph-engine/pkg/constants"
	"go.uber.org/zap"
)

// ErrOutOfRange indicates a settings update that violates the documented
// bounds; the prior settings are retained.
var ErrOutOfRange = errors.New("setting out of range")

// Settings holds the configurable BHPH financing parameters. Both values are
// percentages.
type Settings struct {
	DownPaymentPercentage float64 `yaml:"downPaymentPercentage" json:"downPaymentPercentage"`
	MonthlyInterestRate   float64 `yaml:"monthlyInterestRate" json:"monthlyInterestRate"`
}

// Default returns the out-of-the-box settings.
func Default() Settings {
	return Settings{
		DownPaymentPercentage: constants.DefaultDownPaymentPercentage,
		MonthlyInterestRate:   constants.DefaultMonthlyInterestRate,
	}
}

// Validate checks both values against their documented bounds.
func (s Settings) Validate() error {
	if s.DownPaymentPercentage < 0 || s.DownPaymentPercentage > constants.MaxDownPaymentPercentage {
		return fmt.Errorf("%w: downPaymentPercentage %.2f not in [0, %.0f]",
			ErrOutOfRange, s.DownPaymentPercentage, constants.MaxDownPaymentPercentage)
	}
	if s.MonthlyInterestRate < 0 || s.MonthlyInterestRate > constants.MaxMonthlyInterestRate {
		return fmt.Errorf("%w: monthlyInterestRate %.2f not in [0, %.0f]",
			ErrOutOfRange, s.MonthlyInterestRate, constants.MaxMonthlyInterestRate)
	}
	return nil
}

// MonthlyRateFraction returns the monthly interest rate as a fraction
// (3 -> 0.03) for use in amortization math.
func (s Settings) MonthlyRateFraction() float64 {
	return s.MonthlyInterestRate / constants.PercentageMultiplier
}

// Store persists settings across sessions.
type Store interface {
	// Load returns the persisted settings; found is false when nothing has
	// been persisted yet.
	Load() (s Settings, found bool, err error)
	Save(Settings) error
}

// Manager guards the live settings value. Reads never fail; updates
// validate the full pair, replace it atomically (last writer wins), and
// persist through the configured Store.
type Manager struct {
	mu      sync.RWMutex
	current Settings
	store   Store
	logger  *zap.Logger
}

// NewManager builds a Manager seeded from the store when it holds persisted
// settings, or from Default() otherwise.
func NewManager(store Store, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{current: Default(), store: store, logger: logger}

	if store != nil {
		persisted, found, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted settings: %w", err)
		}
		if found {
			if err := persisted.Validate(); err != nil {
				logger.Warn("persisted settings out of range, falling back to defaults",
					zap.String("op", "settings.NewManager"),
					zap.Error(err),
				)
			} else {
				m.current = persisted
			}
		}
	}

	return m, nil
}

// Get returns the current settings. Never fails.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Update validates next, replaces the stored settings atomically, and
// persists them. On a bounds violation the prior settings are retained and
// ErrOutOfRange is returned.
func (m *Manager) Update(next Settings) (Settings, error) {
	if err := next.Validate(); err != nil {
		m.logger.Warn("rejected settings update",
			zap.String("op", "settings.Manager.Update"),
			zap.Float64("downPaymentPercentage", next.DownPaymentPercentage),
			zap.Float64("monthlyInterestRate", next.MonthlyInterestRate),
			zap.Error(err),
		)
		return m.Get(), err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(next); err != nil {
			return m.current, fmt.Errorf("failed to persist settings: %w", err)
		}
	}
	m.current = next

	m.logger.Info("settings updated",
		zap.String("op", "settings.Manager.Update"),
		zap.Float64("downPaymentPercentage", next.DownPaymentPercentage),
		zap.Float64("monthlyInterestRate", next.MonthlyInterestRate),
	)
	return next, nil
}

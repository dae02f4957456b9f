// Package testutil provides common fixtures and utility functions for testing.
package testutil

import (
	"github.com/megamarcio/bhph-engine/internal/inventory"
	"github.com/megamarcio/bhph-engine/internal/settings"
)

// Vehicle returns the standard test vehicle: bought at 55000, listed at
// 68000, so the default settings suggest a 33000 down payment and finance
// 35000.
func Vehicle() inventory.Vehicle {
	return inventory.Vehicle{
		ID:            "v-001",
		Name:          "Corolla XLE",
		Year:          2019,
		Color:         "Silver",
		VIN:           "1NXBR32E84Z995078",
		InternalCode:  "RV-112",
		PurchasePrice: 55000,
		SalePrice:     68000,
	}
}

// AltVehicle returns a second vehicle for reselection scenarios.
func AltVehicle() inventory.Vehicle {
	return inventory.Vehicle{
		ID:            "v-002",
		Name:          "Civic LX",
		Year:          2021,
		VIN:           "2HGFC2F59MH000001",
		InternalCode:  "RV-113",
		PurchasePrice: 40000,
		SalePrice:     52000,
	}
}

// Settings returns the default dealership settings used across tests.
func Settings() settings.Settings {
	return settings.Settings{DownPaymentPercentage: 60, MonthlyInterestRate: 3}
}

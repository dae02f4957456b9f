package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

const sampleConfig = `
vehicles:
  - id: v-001
    name: Corolla XLE
    year: 2019
    color: Silver
    vin: 1NXBR32E84Z995078
    internalCode: RV-112
    purchasePrice: 55000
    salePrice: 68000
  - id: v-002
    name: Civic LX
    year: 2021
    purchasePrice: 40000
    salePrice: 52000
simulation:
  vehicleId: v-001
  role: standard
  downPayment: 40000
  installments: 12
settings:
  file: /tmp/bhph-settings.yaml
server:
  address: ":9090"
redis:
  address: "localhost:6379"
logging:
  level: debug
  format: console
output:
  format: clipboard
`

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	require.Len(t, conf.Vehicles, 2)
	assert.Equal(t, "v-001", conf.Vehicles[0].ID)
	assert.Equal(t, 55000.0, conf.Vehicles[0].PurchasePrice)
	assert.Equal(t, 68000.0, conf.Vehicles[0].SalePrice)
	assert.Equal(t, "1NXBR32E84Z995078", conf.Vehicles[0].VIN)

	assert.Equal(t, "v-001", conf.Simulation.VehicleID)
	assert.Equal(t, "standard", conf.Simulation.Role)
	require.NotNil(t, conf.Simulation.DownPayment)
	assert.Equal(t, 40000.0, *conf.Simulation.DownPayment)
	assert.Equal(t, 12, conf.Simulation.Installments)

	assert.Equal(t, "/tmp/bhph-settings.yaml", conf.Settings.File)
	assert.Equal(t, ":9090", conf.Server.Address)
	assert.Equal(t, "localhost:6379", conf.Redis.Address)
	assert.Equal(t, "debug", conf.Logging.Level)
	assert.Equal(t, "clipboard", conf.Output.Format)
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, `
vehicles:
  - id: v-001
    name: Corolla XLE
    purchasePrice: 55000
    salePrice: 68000
simulation:
  vehicleId: v-001
`))
	require.NoError(t, err)

	assert.Equal(t, "bhph-settings.yaml", conf.Settings.File)
	assert.Equal(t, ":8080", conf.Server.Address)
	assert.Equal(t, "privileged", conf.Simulation.Role)
	assert.Equal(t, 15, conf.Simulation.Installments)
	assert.Nil(t, conf.Simulation.DownPayment)
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfigurationWarnings(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Configuration)
		fragment string
	}{
		{
			name: "vehicle without id",
			mutate: func(c *Configuration) {
				c.Vehicles[0].ID = ""
			},
			fragment: "has no id",
		},
		{
			name: "duplicate vehicle id",
			mutate: func(c *Configuration) {
				c.Vehicles[1].ID = "v-001"
			},
			fragment: "Duplicate vehicle id",
		},
		{
			name: "negative price",
			mutate: func(c *Configuration) {
				c.Vehicles[0].SalePrice = -1
			},
			fragment: "negative price",
		},
		{
			name: "below cost",
			mutate: func(c *Configuration) {
				c.Vehicles[0].SalePrice = 50000
			},
			fragment: "below cost",
		},
		{
			name: "unknown simulation vehicle",
			mutate: func(c *Configuration) {
				c.Simulation.VehicleID = "v-404"
			},
			fragment: "unknown vehicle",
		},
		{
			name: "unknown role",
			mutate: func(c *Configuration) {
				c.Simulation.Role = "manager"
			},
			fragment: "Unknown simulation role",
		},
		{
			name: "installments out of range",
			mutate: func(c *Configuration) {
				c.Simulation.Installments = 24
			},
			fragment: "will be clamped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
			require.NoError(t, err)
			tt.mutate(conf)

			warnings := conf.ValidateConfiguration()
			found := false
			for _, warning := range warnings {
				if strings.Contains(warning, tt.fragment) {
					found = true
				}
			}
			assert.True(t, found, "expected a warning containing %q, got %v", tt.fragment, warnings)
		})
	}
}

func TestValidateConfigurationClean(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Empty(t, conf.ValidateConfiguration())
}

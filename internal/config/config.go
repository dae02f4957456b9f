// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/megamarcio/bhph-engine/internal/inventory"
	"github.com/megamarcio/bhph-engine/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for bhph-engine.
type Configuration struct {
	Vehicles   []inventory.Vehicle `yaml:"vehicles"`
	Simulation SimulationConfig    `yaml:"simulation,omitempty"`
	Settings   SettingsConfig      `yaml:"settings,omitempty"`
	Server     ServerConfig        `yaml:"server,omitempty"`
	Redis      RedisConfig         `yaml:"redis,omitempty"`
	Logging    LoggingConfig       `yaml:"logging,omitempty"`
	Output     OutputConfig        `yaml:"output,omitempty"`
}

// SimulationConfig describes the one-shot simulation the CLI runs when not
// serving: which vehicle, acting as which role, with optional overrides.
type SimulationConfig struct {
	VehicleID    string   `yaml:"vehicleId"`
	Role         string   `yaml:"role,omitempty"`         // privileged, standard
	DownPayment  *float64 `yaml:"downPayment,omitempty"`  // omit to use the suggestion
	Installments int      `yaml:"installments,omitempty"` // clamped to the supported range
}

// SettingsConfig locates the persisted BHPH settings.
type SettingsConfig struct {
	File string `yaml:"file,omitempty"`
}

// ServerConfig holds runtime parameters for the HTTP API.
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
}

// RedisConfig enables the redis-backed response cache when an address is
// set.
type RedisConfig struct {
	Address string `yaml:"address,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, clipboard
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (conf *Configuration) applyDefaults() {
	if conf.Settings.File == "" {
		conf.Settings.File = constants.DefaultSettingsFile
	}
	if conf.Server.Address == "" {
		conf.Server.Address = constants.DefaultServerAddress
	}
	if conf.Simulation.Role == "" {
		conf.Simulation.Role = "privileged"
	}
	if conf.Simulation.Installments == 0 {
		conf.Simulation.Installments = constants.MaxInstallments
	}
}

// ValidateConfiguration checks the configuration for conditions that are
// worth surfacing but do not prevent a run, and returns them as warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	seen := make(map[string]bool)
	for _, v := range conf.Vehicles {
		if v.ID == "" {
			warnings = append(warnings, fmt.Sprintf("Vehicle '%s' has no id and cannot be selected", v.Name))
			continue
		}
		if seen[v.ID] {
			warnings = append(warnings, fmt.Sprintf("Duplicate vehicle id '%s'; the later entry wins", v.ID))
		}
		seen[v.ID] = true
		if v.PurchasePrice < 0 || v.SalePrice < 0 {
			warnings = append(warnings, fmt.Sprintf("Vehicle '%s' has a negative price", v.ID))
		}
		if v.SalePrice < v.PurchasePrice {
			warnings = append(warnings, fmt.Sprintf("Vehicle '%s' is listed below cost (%.2f < %.2f)",
				v.ID, v.SalePrice, v.PurchasePrice))
		}
	}

	if conf.Simulation.VehicleID != "" && !seen[conf.Simulation.VehicleID] {
		warnings = append(warnings, fmt.Sprintf("Simulation references unknown vehicle '%s'", conf.Simulation.VehicleID))
	}

	switch conf.Simulation.Role {
	case "privileged", "standard":
	default:
		warnings = append(warnings, fmt.Sprintf("Unknown simulation role '%s'; expected privileged or standard", conf.Simulation.Role))
	}

	if conf.Simulation.Installments < constants.MinInstallments || conf.Simulation.Installments > constants.MaxInstallments {
		warnings = append(warnings, fmt.Sprintf("Installments %d outside [%d, %d]; the value will be clamped",
			conf.Simulation.Installments, constants.MinInstallments, constants.MaxInstallments))
	}

	return warnings
}

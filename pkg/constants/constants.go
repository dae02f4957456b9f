// Package constants provides shared constants for the bhph-engine application.
package constants

// Financing bounds and defaults
const (
	// DefaultDownPaymentPercentage is the suggested down payment as a
	// percentage of the vehicle purchase price.
	DefaultDownPaymentPercentage = 60.0

	// DefaultMonthlyInterestRate is the default monthly interest rate
	// applied to financed principal, as a percentage.
	DefaultMonthlyInterestRate = 3.0

	// MaxDownPaymentPercentage bounds the configurable down payment percentage.
	MaxDownPaymentPercentage = 100.0

	// MaxMonthlyInterestRate bounds the configurable monthly interest rate.
	MaxMonthlyInterestRate = 50.0

	// MinInstallments is the shortest allowed term in months.
	MinInstallments = 1

	// MaxInstallments is the longest allowed term in months.
	MaxInstallments = 15
)

// Financial constants
const (
	// DecimalPrecision is the precision for cent-level rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatClipboard is the plain-text quote format used for
	// copy/paste into customer messages
	OutputFormatClipboard = "clipboard"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultSettingsFile is the default persisted BHPH settings file name
	DefaultSettingsFile = "bhph-settings.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"
)

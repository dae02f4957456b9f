package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/megamarcio/bhph-engine/internal/config"
	"github.com/megamarcio/bhph-engine/internal/financing"
	"github.com/megamarcio/bhph-engine/internal/inventory"
	"github.com/megamarcio/bhph-engine/internal/quotes"
	"github.com/megamarcio/bhph-engine/internal/server"
	"github.com/megamarcio/bhph-engine/internal/settings"
	"github.com/megamarcio/bhph-engine/pkg/constants"
	"github.com/megamarcio/bhph-engine/pkg/output"
	"github.com/megamarcio/bhph-engine/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	settingsLocation := flag.String("settings", "", "path to persisted BHPH settings file override")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, clipboard")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot simulation")
	listen := flag.String("listen", "", "HTTP listen address override")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Wire the persisted BHPH settings.
	settingsFile := conf.Settings.File
	if *settingsLocation != "" {
		settingsFile = *settingsLocation
	}
	manager, err := settings.NewManager(settings.NewFileStore(settingsFile), logger)
	if err != nil {
		logger.Fatal("failed to load BHPH settings",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	vehicles := inventory.NewMemoryRepository(conf.Vehicles)

	if *serve {
		address := conf.Server.Address
		if *listen != "" {
			address = *listen
		}

		var cache quotes.Cache
		if conf.Redis.Address != "" {
			cache = quotes.NewRedisCache(conf.Redis.Address)
		}

		handler := server.NewHandler(logger, manager, vehicles, quotes.NewMemoryRepository(), cache, version)
		logger.Info("serving financing API",
			zap.String("op", "main"),
			zap.String("address", address),
		)
		if err := http.ListenAndServe(address, handler); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// One-shot simulation from config.
	vehicle, found := vehicles.Get(conf.Simulation.VehicleID)
	if !found {
		logger.Fatal(fmt.Sprintf("unknown vehicle %q", conf.Simulation.VehicleID),
			zap.String("op", "main"),
		)
	}

	session := financing.NewSession(manager, logger)
	if _, err := session.SelectVehicle(vehicle); err != nil {
		logger.Fatal("failed to start simulation",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if _, err := session.SetInstallments(conf.Simulation.Installments); err != nil {
		logger.Fatal("failed to set installments",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if conf.Simulation.DownPayment != nil {
		if _, err := session.ProposeDownPayment(financing.Role(conf.Simulation.Role), *conf.Simulation.DownPayment); err != nil {
			logger.Fatal("failed to apply down payment",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	deal, err := session.Deal()
	if err != nil {
		logger.Fatal("failed to compute deal",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if proposal := session.Proposal(); proposal.Origin == financing.OriginProposedForApproval {
		logger.Warn(fmt.Sprintf("down payment %.2f requires privileged sign-off before this deal is binding", proposal.Value),
			zap.String("op", "main"),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		fmt.Print(output.PrettyFormat(deal))
	case constants.OutputFormatCSV:
		fmt.Print(output.CsvFormat(deal))
	case constants.OutputFormatClipboard:
		fmt.Print(output.ClipboardText(deal))
	}
}

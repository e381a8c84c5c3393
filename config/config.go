// Package config reads bridge settings from the environment and .env files
// and builds the zap logger the command line tools use.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/pdfium-bridge/errors"
)

// Backends
const (
	BackendNative = "native"
	BackendWasm   = "wasm"
)

// Environment variables
const (
	EnvBackend     = "PDFIUM_BACKEND"
	EnvLibraryPath = "PDFIUM_LIBRARY_PATH"
	EnvWasmPath    = "PDFIUM_WASM_PATH"
	EnvWasmRoot    = "PDFIUM_WASM_ROOT"
	EnvWasmPages   = "PDFIUM_WASM_MEMORY_PAGES"
	EnvLogLevel    = "PDFIUM_LOG_LEVEL"
	EnvLogDev      = "PDFIUM_LOG_DEVELOPMENT"
)

// Config selects and configures a pdfium backend.
type Config struct {
	// Backend is BackendNative or BackendWasm.
	Backend string
	// LibraryPath is the shared library for the native backend. Empty
	// tries the platform defaults.
	LibraryPath string
	// WasmPath is the pdfium module for the wasm backend.
	WasmPath string
	// WasmRoot is the host directory the wasm guest sees as "/".
	WasmRoot string
	// WasmMemoryPages caps guest memory in 64KB pages; 0 keeps wazero's
	// default.
	WasmMemoryPages int
	LogLevel        string
	LogDevelopment  bool
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// Load reads .env and pdfium.env from the working directory, if present,
// then the environment. Variables already set take precedence over files.
func Load() Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("pdfium.env")
	return FromEnv()
}

// LoadFiles is Load with explicit files, all of which must exist.
func LoadFiles(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "load env files")
	}
	return FromEnv(), nil
}

// FromEnv reads the configuration from environment variables only.
func FromEnv() Config {
	return Config{
		Backend:         strings.ToLower(getEnv(EnvBackend, BackendNative)),
		LibraryPath:     getEnv(EnvLibraryPath, ""),
		WasmPath:        getEnv(EnvWasmPath, ""),
		WasmRoot:        getEnv(EnvWasmRoot, "."),
		WasmMemoryPages: getEnvInt(EnvWasmPages, 0),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		LogDevelopment:  getEnvBool(EnvLogDev, false),
	}
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var err error
	switch c.Backend {
	case BackendNative:
	case BackendWasm:
		if c.WasmPath == "" {
			err = multierr.Append(err, errors.InvalidInput(errors.PhaseConfig, EnvWasmPath,
				"wasm backend requires a module path"))
		}
	default:
		err = multierr.Append(err, errors.InvalidInput(errors.PhaseConfig, EnvBackend,
			fmt.Sprintf("unknown backend %q", c.Backend)))
	}
	if c.WasmMemoryPages < 0 || c.WasmMemoryPages > 65536 {
		err = multierr.Append(err, errors.InvalidInput(errors.PhaseConfig, EnvWasmPages,
			fmt.Sprintf("%d pages out of range", c.WasmMemoryPages)))
	}
	if _, lerr := zapcore.ParseLevel(c.LogLevel); lerr != nil {
		err = multierr.Append(err, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, lerr, EnvLogLevel))
	}
	return err
}

// NewLogger builds a console logger writing to stderr at c.LogLevel.
func (c Config) NewLogger() (*zap.Logger, error) {
	return NewLogger(c.LogLevel, c.LogDevelopment)
}

// NewLogger builds a console logger writing to stderr at level.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

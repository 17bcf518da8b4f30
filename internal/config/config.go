// Package config loads runtime settings from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Backend string

const (
	BackendOpenAI Backend = "openai"
	BackendVertex Backend = "vertex"
	BackendMock   Backend = "mock"
)

var ErrUnknownBackend = errors.New("unknown backend")

// ParseBackend accepts a backend name in any case.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendOpenAI, BackendVertex, BackendMock:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

type Config struct {
	Backend Backend

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	GCPProjectID string
	GCPLocation  string
	ModelName    string // Vertex model

	Timeout         time.Duration
	HistorySize     int
	BreakerFailures uint32 // 0 disables the breaker

	PromptFile       string
	InstructionsFile string
	NoColor          bool
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// Load reads the .env file and the environment. An explicit envFile must
// exist; without one a .env in the working directory is used if present.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	backend, err := ParseBackend(getEnv("FRICKBOOKS_BACKEND", string(BackendOpenAI)))
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(getEnv("FRICKBOOKS_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FRICKBOOKS_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid FRICKBOOKS_TIMEOUT: must be positive, got %s", timeout)
	}

	historySize, err := getIntEnv("FRICKBOOKS_HISTORY_SIZE", 8)
	if err != nil {
		return nil, err
	}
	if historySize < 1 {
		return nil, fmt.Errorf("invalid FRICKBOOKS_HISTORY_SIZE: must be at least 1, got %d", historySize)
	}

	failures, err := getIntEnv("FRICKBOOKS_BREAKER_FAILURES", 3)
	if err != nil {
		return nil, err
	}
	if failures < 0 {
		return nil, fmt.Errorf("invalid FRICKBOOKS_BREAKER_FAILURES: must not be negative, got %d", failures)
	}

	return &Config{
		Backend: backend,

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		GCPProjectID: os.Getenv("FRICKBOOKS_GCP_PROJECT"),
		GCPLocation:  getEnv("FRICKBOOKS_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("FRICKBOOKS_MODEL_NAME", "gemini-2.5-flash"),

		Timeout:         timeout,
		HistorySize:     historySize,
		BreakerFailures: uint32(failures),

		PromptFile:       os.Getenv("FRICKBOOKS_PROMPT_FILE"),
		InstructionsFile: os.Getenv("FRICKBOOKS_INSTRUCTIONS_FILE"),
		NoColor:          getBoolEnv("FRICKBOOKS_NO_COLOR", false),
	}, nil
}

// Validate checks that the selected backend has its credentials.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOpenAI:
		if c.OpenAIKey == "" {
			return errors.New("OPENAI_API_KEY must be set for the openai backend")
		}
	case BackendVertex:
		if c.GCPProjectID == "" {
			return errors.New("FRICKBOOKS_GCP_PROJECT must be set for the vertex backend")
		}
	case BackendMock:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	return nil
}

// Model is the model name sent with every request for the selected backend.
func (c *Config) Model() string {
	switch c.Backend {
	case BackendVertex:
		return c.ModelName
	case BackendOpenAI:
		return c.OpenAIModel
	default:
		return "mock"
	}
}

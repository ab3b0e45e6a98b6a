package classifier

import (
	"fmt"

	"github.com/scguardian/guardian/internal/config"
)

// NewGeneratorFromConfig builds the backend selected by cfg. It returns
// ErrCredentialUnavailable when no API key is configured; callers treat that
// as the normal heuristic-only mode.
func NewGeneratorFromConfig(cfg config.ClassifierConfig) (Generator, error) {
	if !cfg.HasCredential() {
		return nil, ErrCredentialUnavailable
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIGenerator(cfg), nil
	case config.ProviderAnthropic:
		return NewAnthropicGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Provider)
	}
}

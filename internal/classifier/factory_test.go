package classifier

import (
	"errors"
	"testing"

	"github.com/scguardian/guardian/internal/config"
)

func TestNewGeneratorFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.ClassifierConfig
		provider string
		wantErr  error
	}{
		{
			name:    "no key",
			cfg:     config.ClassifierConfig{Provider: config.ProviderOpenAI},
			wantErr: ErrCredentialUnavailable,
		},
		{
			name:     "openai",
			cfg:      config.ClassifierConfig{Provider: config.ProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini"},
			provider: config.ProviderOpenAI,
		},
		{
			name:     "anthropic",
			cfg:      config.ClassifierConfig{Provider: config.ProviderAnthropic, APIKey: "k", Model: "claude-3-5-haiku-latest"},
			provider: config.ProviderAnthropic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGeneratorFromConfig(tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || gen != nil {
					t.Fatalf("got (%v, %v), want error %v", gen, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			d, ok := gen.(Describer)
			if !ok || d.Provider() != tt.provider || d.Model() != tt.cfg.Model {
				t.Errorf("unexpected generator %T", gen)
			}
		})
	}
}

func TestNewGeneratorFromConfig_UnknownProvider(t *testing.T) {
	_, err := NewGeneratorFromConfig(config.ClassifierConfig{Provider: "gemini", APIKey: "k"})
	if err == nil || errors.Is(err, ErrCredentialUnavailable) {
		t.Fatalf("expected unsupported provider error, got %v", err)
	}
}

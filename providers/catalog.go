package providers

import (
	"strings"

	"github.com/BaSui01/sailor/config"
)

// BuildCatalog assembles the model registry from the provider
// configuration. A provider's models only enter the catalog when its
// credential is configured; the GenAI gateway model requires the
// gateway URL.
func BuildCatalog(cfg config.ProvidersConfig) *Registry {
	r := NewRegistry()

	if cfg.OpenAIAPIKey != "" {
		r.Register(ModelInfo{ID: "gpt-4o", Name: "GPT-4o", Provider: ProviderOpenAI})
		r.Register(ModelInfo{ID: "gpt-4o-mini", Name: "GPT-4o mini", Provider: ProviderOpenAI})
	}

	if cfg.AnthropicAPIKey != "" {
		r.Register(ModelInfo{ID: "claude-3-5-sonnet-20241022", Name: "Claude 3.5 Sonnet", Provider: ProviderAnthropic})
		r.Register(ModelInfo{ID: "claude-3-haiku-20240307", Name: "Claude 3 Haiku", Provider: ProviderAnthropic})
	}

	if cfg.VertexAPIKey != "" {
		r.Register(ModelInfo{ID: "gemini-1.5-flash-001", Name: "Gemini 1.5 Flash", Provider: ProviderVertex})
	}

	if cfg.GenAIAPIURL != "" {
		r.Register(ModelInfo{ID: GenAIAgentModelID, Name: "GenAI Agent", Provider: ProviderGenAI})
	}

	// Best effort: an unknown or unregistered default is simply not set.
	if cfg.Default != "" {
		for _, m := range r.Models() {
			if strings.EqualFold(m.Provider, cfg.Default) || m.ID == cfg.Default {
				_ = r.SetDefault(m.ID)
				break
			}
		}
	}

	return r
}

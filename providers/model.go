package providers

import (
	"fmt"
	"strings"
)

// Provider display names as they appear in the Home Tab dropdown.
const (
	ProviderOpenAI    = "OpenAI"
	ProviderAnthropic = "Anthropic"
	ProviderVertex    = "VertexAI"
	ProviderGenAI     = "GenAI"
)

// GenAIAgentModelID is the model the bot falls back to when a GenAI
// gateway is configured and the user has no saved selection.
const GenAIAgentModelID = "genai-agent"

// ModelInfo describes a selectable AI model and the backend provider
// that serves it.
type ModelInfo struct {
	// ID is the model identifier sent to the provider (e.g. "gpt-4o").
	ID string

	// Name is the human-readable display name.
	Name string

	// Provider is the backend provider display name (OpenAI, Anthropic, ...).
	Provider string
}

// Label returns the dropdown display text, e.g. "GPT-4o (OpenAI)".
func (m ModelInfo) Label() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Provider)
}

// Value returns the dropdown option value, "<model-id> <provider-lowercase>".
// The state store persists the two halves of this value separately.
func (m ModelInfo) Value() string {
	return fmt.Sprintf("%s %s", m.ID, strings.ToLower(m.Provider))
}

package events

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/BaSui01/sailor/providers"
)

var propProviders = []string{
	providers.ProviderOpenAI,
	providers.ProviderAnthropic,
	providers.ProviderVertex,
	providers.ProviderGenAI,
}

// modelsFromIDs builds a distinct-ID model list, assigning providers
// round-robin.
func modelsFromIDs(ids []string) []providers.ModelInfo {
	seen := make(map[string]bool, len(ids))
	models := make([]providers.ModelInfo, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		models = append(models, providers.ModelInfo{
			ID:       id,
			Name:     strings.ToUpper(id),
			Provider: propProviders[len(models)%len(propProviders)],
		})
	}
	return models
}

func TestProperty_OptionValueFormat(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every option value is '<id> <provider-lowercase>'", prop.ForAll(
		func(ids []string) bool {
			models := modelsFromIDs(ids)
			options := buildOptions(models)
			if len(options) != len(models) {
				return false
			}
			for i, opt := range options {
				m := models[i]
				if opt.Value != m.ID+" "+strings.ToLower(m.Provider) {
					return false
				}
				if !strings.Contains(opt.Text.Text, "("+m.Provider+")") {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

func TestProperty_MatchOptionFindsSavedModel(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("matchOption resolves every catalog model by ID", prop.ForAll(
		func(ids []string) bool {
			models := modelsFromIDs(ids)
			options := buildOptions(models)
			for _, m := range models {
				opt := matchOption(options, m.ID)
				if opt == nil || opt.Value != m.Value() {
					return false
				}
			}
			// an ID that is not in the catalog never matches
			return matchOption(options, "no-such-model-xyzzy") == nil
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

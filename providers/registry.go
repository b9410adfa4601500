package providers

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a thread-safe registry of the models available to the bot.
// It supports registering, retrieving, and listing models, as well as
// designating a default model for convenience.
type Registry struct {
	models       map[string]ModelInfo
	defaultModel string
	mu           sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		models: make(map[string]ModelInfo),
	}
}

// Register adds a model to the registry under its ID.
// If a model with the same ID already exists, it is replaced.
func (r *Registry) Register(m ModelInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.ID] = m
}

// Get retrieves a model by ID.
func (r *Registry) Get(id string) (ModelInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[id]
	return m, ok
}

// Default returns the default model.
// Returns an error if no default has been set or the default ID is not registered.
func (r *Registry) Default() (ModelInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultModel == "" {
		return ModelInfo{}, fmt.Errorf("no default model set")
	}
	m, ok := r.models[r.defaultModel]
	if !ok {
		return ModelInfo{}, fmt.Errorf("default model %q not found in registry", r.defaultModel)
	}
	return m, nil
}

// SetDefault designates an existing registered model as the default.
// Returns an error if the ID is not registered.
func (r *Registry) SetDefault(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.models[id]; !ok {
		return fmt.Errorf("model %q not registered", id)
	}
	r.defaultModel = id
	return nil
}

// Models returns all registered models sorted by ID. The order is
// deterministic so the Home Tab dropdown renders stably across opens.
func (r *Registry) Models() []ModelInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ModelInfo, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// List returns the sorted IDs of all registered models.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.models))
	for id := range r.models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Unregister removes a model from the registry.
// If the removed model was the default, the default is cleared.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.models, id)
	if r.defaultModel == id {
		r.defaultModel = ""
	}
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}

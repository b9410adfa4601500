// Package actions contains handlers for Slack interactive block actions.
package actions

import (
	"context"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/BaSui01/sailor/internal/metrics"
	"github.com/BaSui01/sailor/internal/statestore"
	"github.com/BaSui01/sailor/listeners"
)

// ProviderSelectHandler persists the provider/model a user picks in the
// Home Tab dropdown and republishes the view so the selection sticks.
type ProviderSelectHandler struct {
	store   listeners.UserStateStore // nil when the state store is disabled
	home    HomeRepublisher
	metrics *metrics.Collector
	logger  *zap.Logger
}

// HomeRepublisher re-renders a user's Home Tab after a selection change.
// *events.AppHomeOpenedHandler satisfies this interface.
type HomeRepublisher interface {
	PublishHome(ctx context.Context, userID string)
}

// NewProviderSelectHandler creates the handler.
func NewProviderSelectHandler(
	store listeners.UserStateStore,
	home HomeRepublisher,
	collector *metrics.Collector,
	logger *zap.Logger,
) *ProviderSelectHandler {
	return &ProviderSelectHandler{
		store:   store,
		home:    home,
		metrics: collector,
		logger:  logger.With(zap.String("component", "provider_select")),
	}
}

// Handle processes a block_actions callback. Only pick_a_provider actions
// are considered; everything else is skipped. Failures are logged and the
// callback is dropped, matching the best-effort posture of the home view.
func (h *ProviderSelectHandler) Handle(ctx context.Context, cb *slack.InteractionCallback) {
	start := time.Now()
	defer func() {
		h.metrics.ObserveHandler("provider_select", time.Since(start))
	}()

	log := h.logger.With(zap.String("user_id", cb.User.ID))

	changed := false
	for _, action := range cb.ActionCallback.BlockActions {
		if action.ActionID != listeners.ActionIDPickProvider {
			continue
		}
		if h.saveSelection(ctx, log, cb.User.ID, action.SelectedOption.Value) {
			changed = true
		}
	}

	if changed && h.home != nil {
		h.home.PublishHome(ctx, cb.User.ID)
	}
}

// saveSelection parses "<model-id> <provider>" and persists it. The
// placeholder value "null" and malformed values are ignored.
func (h *ProviderSelectHandler) saveSelection(ctx context.Context, log *zap.Logger, userID, value string) bool {
	if value == "" || value == "null" {
		log.Debug("placeholder selected, nothing to save")
		return false
	}

	fields := strings.Fields(value)
	if len(fields) != 2 {
		log.Warn("malformed selection value", zap.String("value", value))
		return false
	}
	model, provider := fields[0], fields[1]

	if h.store == nil {
		log.Warn("state store disabled, selection not persisted",
			zap.String("provider", provider),
			zap.String("model", model),
		)
		return false
	}

	st := statestore.UserState{Provider: provider, Model: model}
	if err := h.store.Set(ctx, userID, st); err != nil {
		log.Error("failed to save selection", zap.Error(err))
		return false
	}

	h.metrics.SelectionSaved()
	log.Info("saved provider selection",
		zap.String("provider", provider),
		zap.String("model", model),
	)
	return true
}

// Package events contains handlers for Slack Events API callbacks.
package events

import (
	"context"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"github.com/BaSui01/sailor/internal/metrics"
	"github.com/BaSui01/sailor/internal/statestore"
	"github.com/BaSui01/sailor/listeners"
	"github.com/BaSui01/sailor/providers"
)

const (
	homeTab          = "home"
	homeHeaderText   = "Welcome to Sailor Home Page!"
	placeholderValue = "null"
)

// AppHomeOpenedHandler renders the Home Tab provider picker. It builds one
// dropdown option per catalog model, best-effort restores the user's saved
// selection, falls back to the GenAI agent when a gateway is configured,
// and publishes the view. It never returns an error to the dispatcher.
type AppHomeOpenedHandler struct {
	registry  *providers.Registry
	store     listeners.UserStateStore // nil when the state store is disabled
	publisher listeners.ViewPublisher
	metrics   *metrics.Collector
	genaiURL  string
	logger    *zap.Logger
}

// NewAppHomeOpenedHandler creates the handler. store may be nil when no
// Redis is configured; genaiURL may be empty when no GenAI gateway exists.
func NewAppHomeOpenedHandler(
	registry *providers.Registry,
	store listeners.UserStateStore,
	publisher listeners.ViewPublisher,
	collector *metrics.Collector,
	genaiURL string,
	logger *zap.Logger,
) *AppHomeOpenedHandler {
	return &AppHomeOpenedHandler{
		registry:  registry,
		store:     store,
		publisher: publisher,
		metrics:   collector,
		genaiURL:  genaiURL,
		logger:    logger.With(zap.String("component", "app_home_opened")),
	}
}

// Handle processes one app_home_opened event. Events for tabs other than
// "home" are ignored.
func (h *AppHomeOpenedHandler) Handle(ctx context.Context, ev *slackevents.AppHomeOpenedEvent) {
	if ev.Tab != homeTab {
		return
	}

	start := time.Now()
	defer func() {
		h.metrics.ObserveHandler("app_home_opened", time.Since(start))
	}()

	log := h.logger.With(zap.String("user_id", ev.User))
	log.Debug("app home opened")

	options := buildOptions(h.registry.Models())

	initial, saved := h.restoreSelection(ctx, log, ev.User, options)

	if initial == nil && !saved {
		initial = h.applyDefaultSelection(ctx, log, ev.User, options)
	}

	if initial == nil {
		placeholder := placeholderOption(h.genaiFallbackAvailable(options))
		options = append(options, placeholder)
		initial = placeholder
	}

	view := buildHomeView(options, initial)
	if _, err := h.publisher.PublishViewContext(ctx, ev.User, view, ""); err != nil {
		h.metrics.PublishFailed()
		log.Error("failed to publish home view", zap.Error(err))
		return
	}

	h.metrics.ViewPublished()
	log.Info("published home view", zap.Int("options", len(options)))
}

// PublishHome renders and publishes the home view for a user outside of an
// app_home_opened event, e.g. right after the user picks a provider.
func (h *AppHomeOpenedHandler) PublishHome(ctx context.Context, userID string) {
	h.Handle(ctx, &slackevents.AppHomeOpenedEvent{User: userID, Tab: homeTab})
}

// restoreSelection looks up the user's saved state and returns the matching
// option plus whether a saved selection existed at all. Store failures are
// treated as "no saved preference".
func (h *AppHomeOpenedHandler) restoreSelection(ctx context.Context, log *zap.Logger, userID string, options []*slack.OptionBlockObject) (*slack.OptionBlockObject, bool) {
	if h.store == nil {
		return nil, false
	}

	st, err := h.store.Get(ctx, userID)
	if err != nil {
		if statestore.IsNoState(err) {
			h.metrics.StateMiss()
			log.Info("no provider selection found")
		} else {
			h.metrics.StateError()
			log.Warn("failed to get user state, treating as unset", zap.Error(err))
		}
		return nil, false
	}
	if st.Provider == "" || st.Model == "" {
		h.metrics.StateMiss()
		log.Info("no provider selection found")
		return nil, false
	}

	h.metrics.StateHit()
	log.Debug("restored user state",
		zap.String("provider", st.Provider),
		zap.String("model", st.Model),
	)

	opt := matchOption(options, st.Model)
	if opt == nil {
		log.Warn("no matching option for saved model, using default",
			zap.String("model", st.Model),
		)
	}
	return opt, true
}

// applyDefaultSelection preselects the GenAI agent when the gateway is
// configured and the model is in the catalog, persisting the default
// best-effort.
func (h *AppHomeOpenedHandler) applyDefaultSelection(ctx context.Context, log *zap.Logger, userID string, options []*slack.OptionBlockObject) *slack.OptionBlockObject {
	if !h.genaiFallbackAvailable(options) {
		return nil
	}
	opt := matchOption(options, providers.GenAIAgentModelID)
	if opt == nil {
		return nil
	}

	log.Info("using genai-agent as default model")

	if h.store != nil {
		st := statestore.UserState{
			Provider: strings.ToLower(providers.ProviderGenAI),
			Model:    providers.GenAIAgentModelID,
		}
		if err := h.store.Set(ctx, userID, st); err != nil {
			log.Error("failed to save default genai selection", zap.Error(err))
		} else {
			h.metrics.SelectionSaved()
			log.Debug("saved default genai selection")
		}
	}

	return opt
}

// genaiFallbackAvailable reports whether the GenAI default applies: the
// gateway URL must be configured and the agent model present in the catalog.
func (h *AppHomeOpenedHandler) genaiFallbackAvailable(options []*slack.OptionBlockObject) bool {
	return h.genaiURL != "" && matchOption(options, providers.GenAIAgentModelID) != nil
}

// =============================================================================
// Block Kit construction
// =============================================================================

// buildOptions converts the catalog to dropdown options, one per model,
// labeled "Name (Provider)" with value "<model-id> <provider-lowercase>".
func buildOptions(models []providers.ModelInfo) []*slack.OptionBlockObject {
	options := make([]*slack.OptionBlockObject, 0, len(models))
	for _, m := range models {
		text := slack.NewTextBlockObject(slack.PlainTextType, m.Label(), true, false)
		options = append(options, slack.NewOptionBlockObject(m.Value(), text, nil))
	}
	return options
}

// matchOption returns the option whose value starts with "<model> ".
func matchOption(options []*slack.OptionBlockObject, model string) *slack.OptionBlockObject {
	for _, opt := range options {
		if strings.HasPrefix(opt.Value, model+" ") {
			return opt
		}
	}
	return nil
}

// placeholderOption builds the "Select a provider" option shown when the
// user has nothing selected and no default applies.
func placeholderOption(genaiFallback bool) *slack.OptionBlockObject {
	text := "Select a provider"
	if genaiFallback {
		text = "Select a provider (GenAI used as fallback)"
	}
	return slack.NewOptionBlockObject(
		placeholderValue,
		slack.NewTextBlockObject(slack.PlainTextType, text, true, false),
		nil,
	)
}

// buildHomeView assembles the Home Tab view: header, divider, prompt, and
// the provider select.
func buildHomeView(options []*slack.OptionBlockObject, initial *slack.OptionBlockObject) slack.HomeTabViewRequest {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, homeHeaderText, true, false),
	)
	prompt := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "*Pick an option*", false, false),
		nil, nil,
	)

	sel := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic, nil, listeners.ActionIDPickProvider, options...,
	)
	sel.InitialOption = initial

	return slack.HomeTabViewRequest{
		Type: slack.VTHomeTab,
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{
				header,
				slack.NewDividerBlock(),
				prompt,
				slack.NewActionBlock("provider_select", sel),
			},
		},
	}
}

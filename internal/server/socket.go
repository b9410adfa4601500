package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"

	"github.com/BaSui01/sailor/internal/metrics"
	"github.com/BaSui01/sailor/listeners/actions"
	"github.com/BaSui01/sailor/listeners/events"
)

// =============================================================================
// 🔌 Socket Mode 分发器
// =============================================================================

// SocketManager consumes the Slack Socket Mode event stream, acks each
// envelope, and dispatches Events API callbacks and block actions to the
// listeners. Unknown event types are logged at debug level and skipped.
type SocketManager struct {
	client  *socketmode.Client
	home    *events.AppHomeOpenedHandler
	actions *actions.ProviderSelectHandler
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewSocketManager creates the dispatcher.
func NewSocketManager(
	client *socketmode.Client,
	home *events.AppHomeOpenedHandler,
	providerSelect *actions.ProviderSelectHandler,
	collector *metrics.Collector,
	logger *zap.Logger,
) *SocketManager {
	return &SocketManager{
		client:  client,
		home:    home,
		actions: providerSelect,
		metrics: collector,
		logger:  logger.With(zap.String("component", "socketmode")),
	}
}

// Run starts the dispatch loop and blocks on the Socket Mode connection
// until ctx is canceled.
func (m *SocketManager) Run(ctx context.Context) error {
	go m.dispatchLoop(ctx)
	return m.client.RunContext(ctx)
}

// dispatchLoop drains the event channel until ctx is canceled or the
// channel closes.
func (m *SocketManager) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-m.client.Events:
			if !ok {
				return
			}
			m.dispatch(ctx, evt)
		}
	}
}

// dispatch routes a single Socket Mode envelope.
func (m *SocketManager) dispatch(ctx context.Context, evt socketmode.Event) {
	log := m.logger.With(
		zap.String("dispatch_id", uuid.NewString()),
		zap.String("envelope_type", string(evt.Type)),
	)

	switch evt.Type {
	case socketmode.EventTypeConnecting:
		log.Info("connecting to slack")
	case socketmode.EventTypeConnected:
		log.Info("connected to slack")
	case socketmode.EventTypeConnectionError:
		log.Warn("slack connection error, retrying")
	case socketmode.EventTypeInvalidAuth:
		log.Error("invalid slack credentials")

	case socketmode.EventTypeEventsAPI:
		apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			log.Warn("unexpected events api payload")
			return
		}
		m.ack(evt, log)
		m.dispatchEventsAPI(ctx, log, apiEvent)

	case socketmode.EventTypeInteractive:
		callback, ok := evt.Data.(slack.InteractionCallback)
		if !ok {
			log.Warn("unexpected interactive payload")
			return
		}
		m.ack(evt, log)
		m.dispatchInteractive(ctx, log, &callback)

	default:
		log.Debug("unhandled envelope type")
	}
}

// dispatchEventsAPI routes Events API callbacks to the event handlers.
func (m *SocketManager) dispatchEventsAPI(ctx context.Context, log *zap.Logger, apiEvent slackevents.EventsAPIEvent) {
	if apiEvent.Type != slackevents.CallbackEvent {
		log.Debug("skipping non-callback events api event", zap.String("type", apiEvent.Type))
		return
	}

	switch ev := apiEvent.InnerEvent.Data.(type) {
	case *slackevents.AppHomeOpenedEvent:
		m.metrics.EventReceived("app_home_opened")
		m.home.Handle(ctx, ev)
	default:
		log.Debug("unhandled events api event", zap.String("inner_type", apiEvent.InnerEvent.Type))
	}
}

// dispatchInteractive routes interaction callbacks to the action handlers.
func (m *SocketManager) dispatchInteractive(ctx context.Context, log *zap.Logger, callback *slack.InteractionCallback) {
	switch callback.Type {
	case slack.InteractionTypeBlockActions:
		m.metrics.EventReceived("block_actions")
		m.actions.Handle(ctx, callback)
	default:
		log.Debug("unhandled interaction type", zap.String("interaction_type", string(callback.Type)))
	}
}

// ack acknowledges a Socket Mode envelope when it carries a request.
func (m *SocketManager) ack(evt socketmode.Event, log *zap.Logger) {
	if evt.Request == nil {
		log.Warn("envelope without ack request")
		return
	}
	m.client.Ack(*evt.Request)
}

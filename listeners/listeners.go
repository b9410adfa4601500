// Package listeners holds the Slack event and interaction handlers plus the
// narrow contracts they need from their collaborators: a view publisher and
// a user-state store. Handlers are best-effort by design; every failure is
// logged and the event is dropped rather than retried.
package listeners

import (
	"context"

	"github.com/slack-go/slack"
	"golang.org/x/time/rate"

	"github.com/BaSui01/sailor/internal/statestore"
)

// ActionIDPickProvider is the action_id of the Home Tab provider select.
const ActionIDPickProvider = "pick_a_provider"

// ViewPublisher publishes a Home Tab view for a user.
// *slack.Client satisfies this interface.
type ViewPublisher interface {
	PublishViewContext(ctx context.Context, userID string, view slack.HomeTabViewRequest, hash string) (*slack.ViewResponse, error)
}

// UserStateStore reads and writes a user's saved provider/model selection.
// *statestore.Store satisfies this interface.
type UserStateStore interface {
	Get(ctx context.Context, userID string) (statestore.UserState, error)
	Set(ctx context.Context, userID string, st statestore.UserState) error
}

// RateLimitedPublisher wraps a ViewPublisher with a token-bucket limiter.
// views.publish is a Slack Tier 4 method; bursts of home-opened events
// (e.g. after a reinstall) must not trip the platform rate limit.
type RateLimitedPublisher struct {
	pub     ViewPublisher
	limiter *rate.Limiter
}

// NewRateLimitedPublisher wraps pub with a limiter of rps requests per
// second and the given burst size.
func NewRateLimitedPublisher(pub ViewPublisher, rps float64, burst int) *RateLimitedPublisher {
	return &RateLimitedPublisher{
		pub:     pub,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// PublishViewContext waits for limiter admission, then delegates to the
// wrapped publisher. A canceled context aborts the wait.
func (p *RateLimitedPublisher) PublishViewContext(ctx context.Context, userID string, view slack.HomeTabViewRequest, hash string) (*slack.ViewResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.pub.PublishViewContext(ctx, userID, view, hash)
}

package listeners

import (
	"context"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPublisher struct {
	calls int
}

func (c *countingPublisher) PublishViewContext(_ context.Context, _ string, _ slack.HomeTabViewRequest, _ string) (*slack.ViewResponse, error) {
	c.calls++
	return &slack.ViewResponse{}, nil
}

func TestRateLimitedPublisher_Delegates(t *testing.T) {
	inner := &countingPublisher{}
	pub := NewRateLimitedPublisher(inner, 100, 10)

	_, err := pub.PublishViewContext(context.Background(), "U1", slack.HomeTabViewRequest{}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRateLimitedPublisher_CanceledContextAborts(t *testing.T) {
	inner := &countingPublisher{}
	// 令牌耗尽后等待，取消的 context 应立即中止
	pub := NewRateLimitedPublisher(inner, 0.001, 1)

	ctx := context.Background()
	_, err := pub.PublishViewContext(ctx, "U1", slack.HomeTabViewRequest{}, "")
	require.NoError(t, err)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = pub.PublishViewContext(canceled, "U2", slack.HomeTabViewRequest{}, "")
	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

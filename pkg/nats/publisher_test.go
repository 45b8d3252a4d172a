package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zhiidetopchubaeva/shop/pkg/messaging"
)

type brokenEvent struct{}

func (brokenEvent) Subject() string { return "shop.broken" }

func (brokenEvent) Payload() ([]byte, error) { return nil, errors.New("cannot encode") }

func TestNatsPublisher_PayloadError(t *testing.T) {
	// given
	publisher := NewNatsPublisher(nil)

	// when
	err := publisher.Publish(context.Background(), brokenEvent{})

	// then
	require.ErrorIs(t, err, messaging.ErrPayload)
	require.ErrorContains(t, err, "cannot encode")
}

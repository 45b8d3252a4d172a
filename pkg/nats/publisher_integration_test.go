package nats

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
)

// skipIntegrationTests is the environment variable that controls whether to skip integration tests.
const skipIntegrationTests = "SHOP_SKIP_INTEGRATION_TESTS"
const natsImg = "nats:2.11.6-alpine"

type jsonEvent struct {
	subject string
	data    string
}

func (e jsonEvent) Subject() string { return e.subject }

func (e jsonEvent) Payload() ([]byte, error) { return []byte(e.data), nil }

type PublisherSuite struct {
	suite.Suite
	ctx           context.Context
	logger        *slog.Logger
	natsContainer *tcnats.NATSContainer
	nc            *natsgo.Conn
	js            jetstream.JetStream
}

func (s *PublisherSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var err error
	s.natsContainer, err = tcnats.Run(s.ctx, natsImg)
	require.NoError(s.T(), err, "Failed to run NATS container")

	natsURL, err := s.natsContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err)
	s.nc, err = NewClient(natsURL, 5*time.Second)
	require.NoError(s.T(), err, "Failed to connect to NATS")
	s.js, err = NewJetStreamContext(s.nc)
	require.NoError(s.T(), err, "Failed to create JetStream context")
}

func (s *PublisherSuite) TearDownSuite() {
	if s.nc != nil {
		s.nc.Close()
	}
	if err := testcontainers.TerminateContainer(s.natsContainer); err != nil {
		s.logger.Error("Failed to terminate NATS container", "error", err)
	}
}

func TestPublisherIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) TestEnsureStreamIsIdempotent() {
	require.NoError(s.T(), EnsureStream(s.ctx, s.js, "IDEMPOTENT", "idem.>"))
	require.NoError(s.T(), EnsureStream(s.ctx, s.js, "IDEMPOTENT", "idem.>"))
}

func (s *PublisherSuite) TestPublishLandsInStream() {
	// given
	require.NoError(s.T(), EnsureStream(s.ctx, s.js, "SHOPTEST", "shoptest.>"))
	publisher := NewNatsPublisher(s.js)

	// when
	err := publisher.Publish(s.ctx, jsonEvent{subject: "shoptest.likes.toggled", data: `{"liked":true}`})

	// then
	require.NoError(s.T(), err)
	consumer, err := s.js.CreateOrUpdateConsumer(s.ctx, "SHOPTEST", jetstream.ConsumerConfig{
		Durable:       "checker",
		FilterSubject: "shoptest.likes.toggled",
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	require.NoError(s.T(), err)
	batch, err := consumer.Fetch(1, jetstream.FetchMaxWait(5*time.Second))
	require.NoError(s.T(), err)
	var received []string
	for msg := range batch.Messages() {
		received = append(received, string(msg.Data()))
		require.NoError(s.T(), msg.Ack())
	}
	require.NoError(s.T(), batch.Error())
	require.Equal(s.T(), []string{`{"liked":true}`}, received)
}

func (s *PublisherSuite) TestPublishWithoutStreamFails() {
	publisher := NewNatsPublisher(s.js)
	err := publisher.Publish(s.ctx, jsonEvent{subject: "nostream.subject", data: "{}"})
	require.Error(s.T(), err)
}

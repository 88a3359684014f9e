package jetstream_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjetstream "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/adapter"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/logger"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/mocks"
	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/providers/jetstream"
)

type testPublisherMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	nc     *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupTestPublisher(t *testing.T) *testPublisherMocks {
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	return &testPublisherMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		nc:     mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

func testPublisherConfig() jetstream.Config {
	return jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "projection-events",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "syncd-test",
	}
}

func TestNewPublisher_EnsuresStream(t *testing.T) {
	tm := setupTestPublisher(t)
	ctx := context.Background()

	tm.natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(tm.nc, tm.js, nil)
	tm.js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cfg natsjetstream.StreamConfig) (natsjetstream.Stream, error) {
			assert.Equal(t, "projection-events", cfg.Name)
			assert.Equal(t, []string{"projection.>"}, cfg.Subjects)
			return nil, nil
		})

	pub, err := jetstream.NewPublisher(ctx, testPublisherConfig(), tm.natsJS, adapter.NewJSON())
	require.NoError(t, err)
	require.NotNil(t, pub)
}

func TestNewPublisher_StreamEnsureFailure(t *testing.T) {
	tm := setupTestPublisher(t)
	ctx := context.Background()

	tm.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(tm.nc, tm.js, nil)
	tm.js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("insufficient storage"))
	// The connection must not leak when the stream can't be ensured
	tm.nc.EXPECT().Close()

	_, err := jetstream.NewPublisher(ctx, testPublisherConfig(), tm.natsJS, adapter.NewJSON())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projection-events")
}

func TestNewPublisher_ConnectFailure(t *testing.T) {
	tm := setupTestPublisher(t)
	ctx := context.Background()

	tm.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, errors.New("no servers available"))

	_, err := jetstream.NewPublisher(ctx, testPublisherConfig(), tm.natsJS, adapter.NewJSON())
	require.Error(t, err)
}

func TestPublishEvent_SubjectPerKind(t *testing.T) {
	tm := setupTestPublisher(t)
	ctx := context.Background()

	tm.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(tm.nc, tm.js, nil)
	tm.js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).Return(nil, nil)

	pub, err := jetstream.NewPublisher(ctx, testPublisherConfig(), tm.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	subject := fmt.Sprintf("projection.%s", domain.ProjectionEventVoteProjected)
	tm.js.EXPECT().Publish(gomock.Any(), subject, gomock.Any()).
		Return(&natsjetstream.PubAck{}, nil)

	err = pub.PublishEvent(ctx, &domain.ProjectionEvent{
		Kind:   domain.ProjectionEventVoteProjected,
		TxHash: "0xa",
	})
	require.NoError(t, err)
}

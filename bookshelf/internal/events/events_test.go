package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/events"
	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/model"
	"github.com/Astemirdum/bookshelf-service/pkg/circuit_breaker"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const topic = "bookshelf.books.test"

func TestKafkaPublisher_Publish(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	event := model.BookEvent{
		Type:      model.EventBookCreated,
		BookID:    "Qbax5Oy7L8WKf74l",
		Name:      "Sample",
		Timestamp: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != topic {
			return errors.Errorf("unexpected topic %q", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != event.BookID {
			return errors.Errorf("unexpected key %q", key)
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var got model.BookEvent
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got.Type != event.Type || got.BookID != event.BookID || got.Name != event.Name || !got.Timestamp.Equal(event.Timestamp) {
			return errors.Errorf("unexpected event %+v", got)
		}
		return nil
	})

	p := events.NewKafkaPublisher(producer, topic, zap.NewNop())
	require.NoError(t, p.Publish(context.Background(), event))
	require.NoError(t, p.Close())
}

func TestKafkaPublisher_BrokerDown(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	for i := 0; i < 5; i++ {
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	}

	p := events.NewKafkaPublisher(producer, topic, zap.NewNop())
	event := model.BookEvent{Type: model.EventBookDeleted, BookID: "id"}
	for i := 0; i < 5; i++ {
		require.ErrorIs(t, p.Publish(context.Background(), event), sarama.ErrOutOfBrokers)
	}
	// half of the window failed, further sends are short-circuited
	require.ErrorIs(t, p.Publish(context.Background(), event), circuit_breaker.ErrOpenCB)
	require.NoError(t, p.Close())
}

func TestNopPublisher(t *testing.T) {
	p := events.NewNopPublisher()
	require.NoError(t, p.Publish(context.Background(), model.BookEvent{}))
	require.NoError(t, p.Close())
}

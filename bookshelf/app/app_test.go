package app

import (
	"testing"

	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/events"
	"github.com/Astemirdum/bookshelf-service/pkg/kafka"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPublisher_Disabled(t *testing.T) {
	p, err := newPublisher(kafka.Config{}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, events.NewNopPublisher(), p)
}

func TestNewPublisher_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a closed port")
	}
	_, err := newPublisher(kafka.Config{Addrs: []string{"127.0.0.1:1"}, Topic: "bookshelf.books"}, zap.NewNop())
	require.Error(t, err)
}

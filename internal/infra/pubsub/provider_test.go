package pubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tastebud/config"
	"tastebud/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr string
		check   func(t *testing.T, p service.EventPublisher)
	}{
		{
			name: "nil config discards",
			check: func(t *testing.T, p service.EventPublisher) {
				assert.IsType(t, &discardPublisher{}, p)
				assert.NoError(t, p.PublishOrderPlaced(context.Background(), &service.OrderPlacedEvent{OrderID: 1}))
			},
		},
		{
			name: "empty provider discards",
			cfg:  &config.PubSubConfig{},
			check: func(t *testing.T, p service.EventPublisher) {
				assert.IsType(t, &discardPublisher{}, p)
			},
		},
		{
			name: "local provider",
			cfg:  &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8085/push"},
			check: func(t *testing.T, p service.EventPublisher) {
				local, ok := p.(*localHTTPPublisher)
				require.True(t, ok)
				assert.Equal(t, "http://localhost:8085/push", local.endpoint)
			},
		},
		{
			name:    "local provider without endpoint",
			cfg:     &config.PubSubConfig{Provider: "local"},
			wantErr: "localEndpoint",
		},
		{
			name:    "google provider without project",
			cfg:     &config.PubSubConfig{Provider: "google", TopicID: "orders"},
			wantErr: "projectId",
		},
		{
			name:    "unknown provider",
			cfg:     &config.PubSubConfig{Provider: "kafka"},
			wantErr: `unknown pubsub provider "kafka"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newPublisher(context.Background(), tt.cfg, logger)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			tt.check(t, p)
			assert.NoError(t, p.Close())
		})
	}
}

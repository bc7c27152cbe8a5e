package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(slog.New(slog.NewTextHandler(&buf, nil)))

	err := sender.Send(context.Background(), ConferenceConfirmation("ann@example.com", "Go Days"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "to=ann@example.com")
	assert.Contains(t, buf.String(), "You created a new Conference!")

	err = sender.Send(context.Background(), Message{Subject: "no one"})
	assert.Error(t, err)
}

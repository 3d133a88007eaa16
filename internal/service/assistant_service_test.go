package service

import (
	"context"
	"testing"
	"time"

	"tableside/internal/assistant"
	"tableside/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistantService(t *testing.T) {
	store := newTestStore()
	menu := newTestCatalog(t)
	sessions := NewSessionService(store, menu, nil, zerolog.Nop())
	a := assistant.New(menu, assistant.WithClock(func() time.Time { return t0 }))
	svc := NewAssistantService(store, a, zerolog.Nop())
	ctx := context.Background()

	id := startSession(t, sessions)

	greeting, err := svc.Greeting(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, greeting.Text)
	assert.NotEmpty(t, greeting.QuickReplies)

	_, err = svc.Greeting(ctx, uuid.New())
	assert.Equal(t, model.ErrSessionNotFound, err)

	_, err = svc.Message(ctx, id, "  ")
	assert.Equal(t, model.ErrMissingField, err)

	reply, err := svc.Message(ctx, id, "Mon budget est de 40 dinars")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.HTML)
	assert.Positive(t, reply.TypingDelayMs)

	_, err = svc.Message(ctx, id, "merci")
	require.NoError(t, err)

	sess, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 40, sess.Assistant.Budget, "memory persists on the session")
	assert.Equal(t, 2, sess.Assistant.Interactions)
}

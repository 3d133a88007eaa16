package service

import (
	"context"
	"strings"

	"tableside/internal/assistant"
	"tableside/internal/model"
	"tableside/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type assistantService struct {
	store     *session.Store
	assistant *assistant.Assistant
	logger    zerolog.Logger
}

// NewAssistantService creates a new assistant service.
func NewAssistantService(store *session.Store, a *assistant.Assistant, logger zerolog.Logger) AssistantService {
	return &assistantService{
		store:     store,
		assistant: a,
		logger:    logger.With().Str("service", "assistant").Logger(),
	}
}

func (s *assistantService) Greeting(_ context.Context, sessionID uuid.UUID) (assistant.Reply, error) {
	if _, err := s.store.Get(sessionID); err != nil {
		return assistant.Reply{}, err
	}
	return s.assistant.Greeting(), nil
}

// Message answers text and records what it learnt in the session's memory.
func (s *assistantService) Message(_ context.Context, sessionID uuid.UUID, text string) (assistant.Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return assistant.Reply{}, model.ErrMissingField
	}

	var reply assistant.Reply
	sess, err := s.store.Update(sessionID, func(sess *session.Session) error {
		reply = s.assistant.Respond(&sess.Assistant, text)
		return nil
	})
	if err != nil {
		return assistant.Reply{}, err
	}

	s.logger.Debug().
		Str("session_id", sessionID.String()).
		Int("interactions", sess.Assistant.Interactions).
		Str("emotion", string(reply.Emotion)).
		Int("suggestions", len(reply.Suggestions)).
		Msg("assistant replied")

	return reply, nil
}

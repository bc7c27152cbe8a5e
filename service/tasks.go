package service

import (
	"conference-api/mailer"
	"conference-api/tasks"
	"context"
	"fmt"
)

// TaskRegistry is satisfied by tasks.Worker.
type TaskRegistry interface {
	Handle(name string, fn tasks.HandlerFunc)
}

// RegisterTaskHandlers binds the deferred work queued by the service.
func (s *Service) RegisterTaskHandlers(registry TaskRegistry, sender mailer.Sender) {
	registry.Handle(tasks.SetFeaturedSpeaker, s.setFeaturedSpeaker)
	registry.Handle(tasks.SendConfirmationEmail, func(ctx context.Context, params map[string]string) error {
		return sendConfirmationEmail(ctx, sender, params)
	})
}

func (s *Service) setFeaturedSpeaker(ctx context.Context, params map[string]string) error {
	confID, err := parseKey(params["conferenceKey"], "conference")
	if err != nil {
		return err
	}
	speakerID, err := parseKey(params["speakerKey"], "speaker")
	if err != nil {
		return err
	}

	msg, err := s.cache.RefreshFeaturedSpeaker(ctx, confID, speakerID)
	if err != nil {
		return fmt.Errorf("failed to refresh featured speaker: %w", err)
	}
	if msg != "" {
		s.logger.InfoContext(ctx, "featured speaker set", "message", msg)
	}
	return nil
}

func sendConfirmationEmail(ctx context.Context, sender mailer.Sender, params map[string]string) error {
	return sender.Send(ctx, mailer.ConferenceConfirmation(params["email"], params["conferenceInfo"]))
}

package service

import (
	"conference-api/model"
	"context"
)

func (s *Service) Announcement(ctx context.Context) (model.StringMessage, error) {
	msg, err := s.cache.Announcement(ctx)
	if err != nil {
		return model.StringMessage{}, err
	}
	return model.StringMessage{Data: msg}, nil
}

func (s *Service) FeaturedSpeaker(ctx context.Context) (model.StringMessage, error) {
	msg, err := s.cache.FeaturedSpeaker(ctx)
	if err != nil {
		return model.StringMessage{}, err
	}
	return model.StringMessage{Data: msg}, nil
}

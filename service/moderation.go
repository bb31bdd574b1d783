package service

import (
	"Doodly/pkg/llm"
	"context"
)

var _ IModerationService = (*ModerationService)(nil)

// IModerationService screens artwork before it becomes a post. Any error is
// treated as a rejection by callers (fail closed).
type IModerationService interface {
	ReviewImage(ctx context.Context, imageURL string) (llm.Decision, error)
}

type ModerationService struct {
	Client *llm.Client
}

func (m *ModerationService) ReviewImage(ctx context.Context, imageURL string) (llm.Decision, error) {
	res, err := m.Client.ModerateImage(ctx, imageURL)
	if err != nil {
		return llm.Decision{Outcome: llm.OutcomeReject}, err
	}
	return llm.Decide(res), nil
}

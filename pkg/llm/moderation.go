package llm

import (
	"Doodly/pkg/log"
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"
)

// Scores are the provider's category scores mapped to our own type so the
// approval policy stays testable without SDK values.
type Scores struct {
	Sexual          float64
	SexualMinors    float64
	Violence        float64
	ViolenceGraphic float64
	Harassment      float64
	Hate            float64
	SelfHarm        float64
	Illicit         float64
}

type ModerationResult struct {
	Flagged bool
	Scores  Scores
}

// ModerateImage runs the provider's image moderation on a public URL.
// Callers treat any returned error as a rejection (fail closed).
func (c *Client) ModerateImage(ctx context.Context, imageURL string) (*ModerationResult, error) {
	params := openai.ModerationNewParams{
		Model: openai.ModerationModel(c.moderationModel),
		Input: openai.ModerationNewParamsInputUnion{
			OfModerationMultiModalArray: []openai.ModerationMultiModalInputUnionParam{
				{
					OfImageURL: &openai.ModerationImageURLInputParam{
						ImageURL: openai.ModerationImageURLInputImageURLParam{
							URL: imageURL,
						},
					},
				},
			},
		},
	}

	startTime := time.Now()
	resp, err := c.oc.Moderations.New(ctx, params)
	if err != nil {
		log.L.Error("moderation call failed", zap.Error(err))
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, errors.New("moderation returned no results")
	}

	r := resp.Results[0]
	log.L.Info("image moderated",
		zap.Bool("flagged", r.Flagged),
		zap.Duration("took", time.Since(startTime)))

	return &ModerationResult{
		Flagged: r.Flagged,
		Scores: Scores{
			Sexual:          r.CategoryScores.Sexual,
			SexualMinors:    r.CategoryScores.SexualMinors,
			Violence:        r.CategoryScores.Violence,
			ViolenceGraphic: r.CategoryScores.ViolenceGraphic,
			Harassment:      r.CategoryScores.Harassment,
			Hate:            r.CategoryScores.Hate,
			SelfHarm:        r.CategoryScores.SelfHarm,
			Illicit:         r.CategoryScores.Illicit,
		},
	}, nil
}

// Thresholds for a children's platform. Anything minor-adjacent or sexual
// rejects at the first hint; the rest allows mild scores (cartoon swords,
// spooky drawings) and sends a gray band to human review.
const (
	strictThreshold  = 0.02
	reviewThreshold  = 0.25
	generalThreshold = 0.4
)

const (
	OutcomeApprove = "approve"
	OutcomeReview  = "review"
	OutcomeReject  = "reject"
)

type Decision struct {
	Outcome string
	Reasons []string
}

func (d Decision) Approved() bool { return d.Outcome == OutcomeApprove }
func (d Decision) Rejected() bool { return d.Outcome == OutcomeReject }

// Decide maps moderation output to approve/review/reject. Reject wins over
// review.
func Decide(res *ModerationResult) Decision {
	var rejectReasons, reviewReasons []string

	strict := map[string]float64{
		"sexual":        res.Scores.Sexual,
		"sexual/minors": res.Scores.SexualMinors,
		"self-harm":     res.Scores.SelfHarm,
	}
	general := map[string]float64{
		"violence":         res.Scores.Violence,
		"violence/graphic": res.Scores.ViolenceGraphic,
		"harassment":       res.Scores.Harassment,
		"hate":             res.Scores.Hate,
		"illicit":          res.Scores.Illicit,
	}

	for name, score := range strict {
		if score >= strictThreshold {
			rejectReasons = append(rejectReasons, name)
		}
	}
	for name, score := range general {
		switch {
		case score >= generalThreshold:
			rejectReasons = append(rejectReasons, name)
		case score >= reviewThreshold:
			reviewReasons = append(reviewReasons, name)
		}
	}
	if res.Flagged && len(rejectReasons) == 0 {
		rejectReasons = append(rejectReasons, "provider flag")
	}

	switch {
	case len(rejectReasons) > 0:
		return Decision{Outcome: OutcomeReject, Reasons: rejectReasons}
	case len(reviewReasons) > 0:
		return Decision{Outcome: OutcomeReview, Reasons: reviewReasons}
	default:
		return Decision{Outcome: OutcomeApprove}
	}
}

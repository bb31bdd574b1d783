package service

import (
	"Doodly/dao"
	"Doodly/models"
	"Doodly/pkg/llm"
	"Doodly/pkg/log"
	"Doodly/pkg/response"
	"Doodly/pkg/snowflake"
	"Doodly/pkg/timeutil"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	recentCategoryWindow = 6

	// pause between model calls within one age group, for provider rate limits
	promptGenDelay = 250 * time.Millisecond
)

// PromptTextGenerator is the LLM-facing slice of the prompt pipeline.
// *llm.Client implements it; tests swap in a canned generator.
type PromptTextGenerator interface {
	GeneratePromptText(ctx context.Context, req llm.PromptRequest) (*llm.PromptResult, error)
}

var _ IPromptService = (*PromptService)(nil)

type IPromptService interface {
	GetToday(ctx context.Context, ageGroup string) ([]*models.Prompt, error)
	GetBySlot(ctx context.Context, day, ageGroup, timeSlot string) (*models.Prompt, error)
	GenerateMatrix(ctx context.Context, day string) (generated, fallback int, err error)
}

type PromptService struct {
	PromptDAO *dao.PromptDAO
	Generator PromptTextGenerator

	// dayCache holds the finished prompt set per "day/ageGroup". Entries for
	// past days are harmless leftovers; the map resets on restart.
	dayCache cmap.ConcurrentMap[string, []*models.Prompt]

	genMu sync.Mutex // one lazy generation at a time
	rng   *rand.Rand
	rngMu sync.Mutex
}

func NewPromptService(promptDAO *dao.PromptDAO, generator PromptTextGenerator) *PromptService {
	return &PromptService{
		PromptDAO: promptDAO,
		Generator: generator,
		dayCache:  cmap.New[[]*models.Prompt](),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GetToday returns both daily-slot prompts for the age group, generating them
// on first request if the daily job has not run yet.
func (s *PromptService) GetToday(ctx context.Context, ageGroup string) ([]*models.Prompt, error) {
	if !models.ValidAgeGroup(ageGroup) {
		return nil, response.NewError(http.StatusBadRequest, "unknown age group")
	}
	day := timeutil.Today()
	cacheKey := day + "/" + ageGroup

	if cached, ok := s.dayCache.Get(cacheKey); ok {
		return cached, nil
	}

	prompts, err := s.PromptDAO.FindByDayGroup(ctx, day, ageGroup)
	if err != nil {
		return nil, err
	}
	if len(prompts) < len(models.DailySlots) {
		// scheduler missed the day, fill the gaps inline
		s.genMu.Lock()
		_, _, err = s.generateGroup(ctx, day, ageGroup)
		s.genMu.Unlock()
		if err != nil {
			return nil, err
		}
		prompts, err = s.PromptDAO.FindByDayGroup(ctx, day, ageGroup)
		if err != nil {
			return nil, err
		}
	}

	s.dayCache.Set(cacheKey, prompts)
	return prompts, nil
}

func (s *PromptService) GetBySlot(ctx context.Context, day, ageGroup, timeSlot string) (*models.Prompt, error) {
	return s.PromptDAO.GetBySlot(ctx, day, ageGroup, timeSlot)
}

// GenerateMatrix writes the full prompt set for one day: every age group and
// daily slot. Age groups run in parallel; existing rows are replaced.
func (s *PromptService) GenerateMatrix(ctx context.Context, day string) (int, int, error) {
	if day == "" {
		day = timeutil.Today()
	}

	var mu sync.Mutex
	var generated, fallback int

	p := pool.New().WithContext(ctx)
	for _, ageGroup := range models.AgeGroups {
		ageGroup := ageGroup
		p.Go(func(ctx context.Context) error {
			g, f, err := s.generateGroup(ctx, day, ageGroup)
			mu.Lock()
			generated += g
			fallback += f
			mu.Unlock()
			return err
		})
	}
	if err := p.Wait(); err != nil {
		return generated, fallback, err
	}

	// fresh rows make the cache stale
	for _, ageGroup := range models.AgeGroups {
		s.dayCache.Remove(day + "/" + ageGroup)
	}
	log.L.Info("prompt matrix generated",
		zap.String("day", day), zap.Int("generated", generated), zap.Int("fallback", fallback))
	return generated, fallback, nil
}

// generateGroup builds one age group's daily prompts. LLM failures degrade to
// the category's static fallback so the day is never promptless.
func (s *PromptService) generateGroup(ctx context.Context, day, ageGroup string) (int, int, error) {
	recent, err := s.PromptDAO.RecentCategories(ctx, ageGroup, recentCategoryWindow)
	if err != nil {
		return 0, 0, err
	}

	var generated, fallback int
	for i, slot := range models.DailySlots {
		if i > 0 {
			select {
			case <-ctx.Done():
				return generated, fallback, ctx.Err()
			case <-time.After(promptGenDelay):
			}
		}
		cat, theme := s.pickTheme(ageGroup, recent)
		if cat.Name == "" {
			continue
		}

		result, genErr := s.Generator.GeneratePromptText(ctx, llm.PromptRequest{
			AgeGroup: ageGroup,
			TimeSlot: slot,
			Day:      day,
			Category: cat.Name,
			Theme:    theme,
		})
		fromModel := genErr == nil && result != nil
		if !fromModel {
			result = llm.FallbackPrompt(ageGroup, cat)
		}

		hints, _ := json.Marshal(map[string]string{"category": cat.Name, "theme": theme})
		prompt := &models.Prompt{
			ID:             uint64(snowflake.GenID()),
			Day:            day,
			AgeGroup:       ageGroup,
			TimeSlot:       slot,
			Difficulty:     result.Difficulty,
			PromptText:     result.PromptText,
			CommunityTitle: result.CommunityTitle,
			ThemeCategory:  cat.Name,
			StyleHints:     datatypes.JSON(hints),
			Generated:      fromModel,
		}
		if err := s.PromptDAO.Upsert(ctx, prompt); err != nil {
			return generated, fallback, err
		}

		if fromModel {
			generated++
		} else {
			fallback++
		}
		// the slot we just wrote counts against the next pick
		recent = append([]string{cat.Name}, recent...)
	}
	return generated, fallback, nil
}

func (s *PromptService) pickTheme(ageGroup string, recent []string) (llm.ThemeCategory, string) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return llm.PickTheme(ageGroup, recent, s.rng)
}

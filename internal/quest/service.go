package quest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/myrjola/questapp/internal/sqlite"
)

const daysPerWeek = 7

// Service handles the business logic for daily quest coaching.
type Service struct {
	repo         *sqliteRepository
	logger       *slog.Logger
	openaiAPIKey string
}

// NewService creates a new quest service. An empty OpenAI API key disables
// coach messages without affecting quest generation.
func NewService(db *sqlite.Database, logger *slog.Logger, openaiAPIKey string) *Service {
	return &Service{
		repo:         newSQLiteRepository(db, logger),
		logger:       logger,
		openaiAPIKey: openaiAPIKey,
	}
}

// SaveProfile validates and stores the coaching profile for a user.
func (s *Service) SaveProfile(ctx context.Context, userID string, profile Profile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	if err := s.repo.saveProfile(ctx, userID, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GetProfile retrieves the coaching profile for a user.
func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// ListFoods returns the food-nutrient catalog.
func (s *Service) ListFoods(ctx context.Context) (Catalog, error) {
	catalog, err := s.repo.listFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return catalog, nil
}

// GenerateDaily generates, stores, and returns the quest for one date,
// replacing any previously stored quest for that date.
func (s *Service) GenerateDaily(ctx context.Context, userID string, date time.Time) (Quest, error) {
	profile, err := s.repo.getProfile(ctx, userID)
	if err != nil {
		return Quest{}, fmt.Errorf("get profile: %w", err)
	}

	catalog, err := s.repo.listFoods(ctx)
	if err != nil {
		return Quest{}, fmt.Errorf("list foods: %w", err)
	}

	quest, err := Generate(profile, date, catalog)
	if err != nil {
		return Quest{}, fmt.Errorf("generate quest %s: %w", date.Format(dateFormat), err)
	}

	quest.CoachMessage = s.coachMessage(ctx, quest)

	if err = s.repo.saveQuest(ctx, userID, quest); err != nil {
		return Quest{}, fmt.Errorf("save quest %s: %w", date.Format(dateFormat), err)
	}
	return quest, nil
}

// GetQuest retrieves the stored quest for a date.
func (s *Service) GetQuest(ctx context.Context, userID string, date time.Time) (Quest, error) {
	quest, err := s.repo.getQuest(ctx, userID, date)
	if err != nil {
		return Quest{}, fmt.Errorf("get quest %s: %w", date.Format(dateFormat), err)
	}
	return quest, nil
}

// GenerateWeek generates and stores quests for seven consecutive days
// starting from the given date. Days are generated concurrently; generation
// is pure and the store serializes writes.
func (s *Service) GenerateWeek(ctx context.Context, userID string, start time.Time) ([]Quest, error) {
	quests := make([]Quest, daysPerWeek)

	g, ctx := errgroup.WithContext(ctx)
	for i := range daysPerWeek {
		g.Go(func() error {
			quest, err := s.GenerateDaily(ctx, userID, start.AddDate(0, 0, i))
			if err != nil {
				return err
			}
			quests[i] = quest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generate week: %w", err)
	}
	return quests, nil
}

// coachMessage asks the narrator for a motivational summary. Failures degrade
// to an empty message, quests never fail on narration.
func (s *Service) coachMessage(ctx context.Context, quest Quest) string {
	if s.openaiAPIKey == "" {
		return ""
	}
	message, err := newNarrator(s.openaiAPIKey).coachMessage(ctx, quest)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "coach message generation failed",
			slog.Any("error", err))
		return ""
	}
	return message
}

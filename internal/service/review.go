// Package service provides the review business logic, delegating all card
// and deck state to the upstream flashcard engine.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sidious38/simpleAnkiWeb/internal/media"
	"github.com/sidious38/simpleAnkiWeb/internal/models"
)

// ErrNoCards is returned when a deck has no new or due cards to review.
var ErrNoCards = errors.New("no cards to review")

// Engine defines the upstream operations required by the review service.
type Engine interface {
	// DeckNames returns the names of all decks.
	DeckNames(ctx context.Context) ([]string, error)
	// FindCards returns the IDs of cards matching an engine query string.
	FindCards(ctx context.Context, query string) ([]int64, error)
	// CardsInfo returns full card information for the given IDs.
	CardsInfo(ctx context.Context, ids []int64) ([]models.Card, error)
	// AnswerCards submits gradings and returns the raw engine result.
	AnswerCards(ctx context.Context, answers []models.CardAnswer) (json.RawMessage, error)
	// RetrieveMediaFile returns the base64 contents of a media file.
	RetrieveMediaFile(ctx context.Context, filename string) (string, error)
	// Sync triggers a collection sync.
	Sync(ctx context.Context) error
}

// ReviewService implements review operations by delegating to an Engine.
type ReviewService struct {
	engine  Engine
	inliner *media.Inliner

	// now is the clock used for due-time comparisons; replaced in tests.
	now func() time.Time
}

// NewReviewService constructs a ReviewService over the given engine.
func NewReviewService(engine Engine) *ReviewService {
	return &ReviewService{
		engine:  engine,
		inliner: media.NewInliner(engine),
		now:     time.Now,
	}
}

// DeckNames returns the names of all decks in the engine.
func (s *ReviewService) DeckNames(ctx context.Context) ([]string, error) {
	return s.engine.DeckNames(ctx)
}

// DueCards returns the new and due cards of the named deck, sorted into
// review order (see sortCards).
func (s *ReviewService) DueCards(ctx context.Context, deck string) ([]models.Card, error) {
	query := fmt.Sprintf("deck:%s and (is:new or is:due)", deck)
	ids, err := s.engine.FindCards(ctx, query)
	if err != nil {
		return nil, err
	}

	cards, err := s.engine.CardsInfo(ctx, ids)
	if err != nil {
		return nil, err
	}

	s.sortCards(cards)
	return cards, nil
}

// NextCard returns the ID of the highest-priority card in the named deck.
// Returns ErrNoCards if the deck has no new or due cards.
func (s *ReviewService) NextCard(ctx context.Context, deck string) (int64, error) {
	cards, err := s.DueCards(ctx, deck)
	if err != nil {
		return 0, err
	}
	if len(cards) == 0 {
		return 0, ErrNoCards
	}
	return cards[0].CardID, nil
}

// CardContent fetches one card's full info and inlines any media referenced
// by its question and answer. It returns a one-element slice, matching the
// shape the review page expects from the engine.
func (s *ReviewService) CardContent(ctx context.Context, id int64) ([]models.Card, error) {
	cards, err := s.engine.CardsInfo(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("card %d not found", id)
	}

	if cards[0].Question, err = s.inliner.Rewrite(ctx, cards[0].Question); err != nil {
		return nil, err
	}
	if cards[0].Answer, err = s.inliner.Rewrite(ctx, cards[0].Answer); err != nil {
		return nil, err
	}

	return cards[:1], nil
}

// AnswerCard submits a single grading for a card and returns the raw
// engine result.
func (s *ReviewService) AnswerCard(ctx context.Context, id int64, ease int) (json.RawMessage, error) {
	return s.engine.AnswerCards(ctx, []models.CardAnswer{{CardID: id, Ease: ease}})
}

// Sync triggers a collection sync in the engine.
func (s *ReviewService) Sync(ctx context.Context) error {
	return s.engine.Sync(ctx)
}

// sortCards orders cards for review: overdue cards that have been reviewed
// at least once come first, everything else after, each group ascending by
// due timestamp. This shows overdue reviews before new or future cards.
func (s *ReviewService) sortCards(cards []models.Card) {
	now := float64(s.now().Unix())
	bucket := func(c models.Card) int {
		if c.Reps >= 1 && c.Due < now {
			return 0
		}
		return 1
	}
	sort.SliceStable(cards, func(i, j int) bool {
		bi, bj := bucket(cards[i]), bucket(cards[j])
		if bi != bj {
			return bi < bj
		}
		return cards[i].Due < cards[j].Due
	})
}

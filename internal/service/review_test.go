package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sidious38/simpleAnkiWeb/internal/models"
)

// fakeEngine implements Engine for testing.
type fakeEngine struct {
	deckNames []string
	findIDs   []int64
	findErr   error
	cards     []models.Card
	cardsErr  error
	media     map[string]string

	lastQuery   string
	lastAnswers []models.CardAnswer
	synced      bool
}

func (f *fakeEngine) DeckNames(ctx context.Context) ([]string, error) {
	return f.deckNames, nil
}

func (f *fakeEngine) FindCards(ctx context.Context, query string) ([]int64, error) {
	f.lastQuery = query
	return f.findIDs, f.findErr
}

func (f *fakeEngine) CardsInfo(ctx context.Context, ids []int64) ([]models.Card, error) {
	return f.cards, f.cardsErr
}

func (f *fakeEngine) AnswerCards(ctx context.Context, answers []models.CardAnswer) (json.RawMessage, error) {
	f.lastAnswers = answers
	return json.RawMessage(`[true]`), nil
}

func (f *fakeEngine) RetrieveMediaFile(ctx context.Context, filename string) (string, error) {
	data, ok := f.media[filename]
	if !ok {
		return "", errors.New("media file not found")
	}
	return data, nil
}

func (f *fakeEngine) Sync(ctx context.Context) error {
	f.synced = true
	return nil
}

// newTestService pins the service clock to a fixed instant.
func newTestService(engine *fakeEngine, now time.Time) *ReviewService {
	s := NewReviewService(engine)
	s.now = func() time.Time { return now }
	return s
}

func TestDueCards_SortOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := float64(now.Add(-time.Hour).Unix())
	future := float64(now.Add(time.Hour).Unix())

	engine := &fakeEngine{
		findIDs: []int64{1, 2, 3, 4, 5},
		cards: []models.Card{
			{CardID: 1, Due: future, Reps: 5},    // reviewed but not yet due
			{CardID: 2, Due: past, Reps: 0},      // past-due but never reviewed
			{CardID: 3, Due: past, Reps: 2},      // overdue review
			{CardID: 4, Due: past - 100, Reps: 1}, // most overdue review
			{CardID: 5, Due: past - 50, Reps: 0}, // new card
		},
	}

	s := newTestService(engine, now)
	cards, err := s.DueCards(context.Background(), "Spanish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Overdue reviewed cards first by due ascending, all others after,
	// also by due ascending.
	wantOrder := []int64{4, 3, 5, 2, 1}
	for i, want := range wantOrder {
		if cards[i].CardID != want {
			t.Fatalf("position %d: expected card %d, got %d", i, want, cards[i].CardID)
		}
	}

	if engine.lastQuery != "deck:Spanish and (is:new or is:due)" {
		t.Errorf("unexpected engine query: %q", engine.lastQuery)
	}
}

func TestDueCards_SortIsTotal(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := float64(now.Add(-time.Hour).Unix())

	// An overdue reviewed card precedes everything else regardless of
	// either card's own due timestamp.
	engine := &fakeEngine{
		findIDs: []int64{1, 2},
		cards: []models.Card{
			{CardID: 1, Due: past - 1000, Reps: 0},
			{CardID: 2, Due: past, Reps: 1},
		},
	}

	s := newTestService(engine, now)
	cards, err := s.DueCards(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cards[0].CardID != 2 {
		t.Errorf("expected overdue reviewed card first, got %d", cards[0].CardID)
	}
}

func TestNextCard(t *testing.T) {
	now := time.Now()
	engine := &fakeEngine{
		findIDs: []int64{7},
		cards:   []models.Card{{CardID: 7, Due: 0, Reps: 1}},
	}

	s := newTestService(engine, now)
	id, err := s.NextCard(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("expected card 7, got %d", id)
	}
}

func TestNextCard_EmptyDeck(t *testing.T) {
	s := newTestService(&fakeEngine{}, time.Now())
	_, err := s.NextCard(context.Background(), "empty")
	if !errors.Is(err, ErrNoCards) {
		t.Errorf("expected ErrNoCards, got %v", err)
	}
}

func TestNextCard_EngineError(t *testing.T) {
	findErr := errors.New("bad query")
	s := newTestService(&fakeEngine{findErr: findErr}, time.Now())
	_, err := s.NextCard(context.Background(), "x")
	if !errors.Is(err, findErr) {
		t.Errorf("expected engine error, got %v", err)
	}
}

func TestCardContent_InlinesMedia(t *testing.T) {
	engine := &fakeEngine{
		cards: []models.Card{{
			CardID:   9,
			Question: `What is this? <img src="pic.jpg">`,
			Answer:   `<img src="back.jpg"> A cat`,
		}},
		media: map[string]string{"pic.jpg": "ZZZ", "back.jpg": "YYY"},
	}

	s := newTestService(engine, time.Now())
	cards, err := s.CardContent(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected one card, got %d", len(cards))
	}

	wantQ := `What is this? <img src="data:image/jpeg;base64,ZZZ" />`
	if cards[0].Question != wantQ {
		t.Errorf("expected %q, got %q", wantQ, cards[0].Question)
	}
	wantA := `<img src="data:image/jpeg;base64,YYY" /> A cat`
	if cards[0].Answer != wantA {
		t.Errorf("expected %q, got %q", wantA, cards[0].Answer)
	}
}

func TestCardContent_MediaFailureFailsRequest(t *testing.T) {
	engine := &fakeEngine{
		cards: []models.Card{{CardID: 9, Question: `<img src="gone.jpg">`}},
	}

	s := newTestService(engine, time.Now())
	if _, err := s.CardContent(context.Background(), 9); err == nil {
		t.Fatal("expected error when media fetch fails")
	}
}

func TestAnswerCard(t *testing.T) {
	engine := &fakeEngine{}
	s := newTestService(engine, time.Now())

	result, err := s.AnswerCard(context.Background(), 42, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != `[true]` {
		t.Errorf("expected raw engine result, got %s", result)
	}

	if len(engine.lastAnswers) != 1 ||
		engine.lastAnswers[0].CardID != 42 ||
		engine.lastAnswers[0].Ease != 3 {
		t.Errorf("unexpected answers submitted: %+v", engine.lastAnswers)
	}
}

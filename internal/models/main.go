// Package models defines the data structures exchanged with the upstream
// flashcard engine.
package models

// Card represents a flashcard as reported by the upstream engine's cardsInfo
// action. Only the fields this application reads are modelled; any other
// fields in the engine's response are dropped during decoding.
type Card struct {
	// CardID is the engine-assigned identifier of the card.
	CardID int64 `json:"cardId"`
	// Due is the unix timestamp at which the card becomes eligible for review.
	Due float64 `json:"due"`
	// Reps is the number of times the card has been reviewed.
	Reps int `json:"reps"`
	// Question is the rendered front of the card, as HTML.
	Question string `json:"question"`
	// Answer is the rendered back of the card, as HTML.
	Answer string `json:"answer"`
}

// CardAnswer is a single grading submitted to the engine's answerCards action.
type CardAnswer struct {
	// CardID identifies the card being graded.
	CardID int64 `json:"cardId"`
	// Ease is the grading signal (1=again, 2=hard, 3=good, 4=easy) consumed
	// by the engine's scheduler.
	Ease int `json:"ease"`
}

package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pillgame/apps/go-server/internal/game"
)

func TestFor_LocaleSelection(t *testing.T) {
	tests := []struct {
		lang, accept string
		want, dir    string
	}{
		{"", "", "en", "ltr"},
		{"ar", "", "ar", "rtl"},
		{"", "ar-EG,ar;q=0.9,en;q=0.5", "ar", "rtl"},
		{"en", "ar", "en", "ltr"},
		{"de", "", "en", "ltr"},
		{"not a tag", "ar", "ar", "rtl"},
		{"fr", "ar", "ar", "rtl"},
		{"ar", "en", "ar", "rtl"},
	}
	for _, tt := range tests {
		tr := For(tt.lang, tt.accept)
		assert.Equal(t, tt.want, tr.Lang(), "lang=%q accept=%q", tt.lang, tt.accept)
		assert.Equal(t, tt.dir, tr.Dir(), "lang=%q accept=%q", tt.lang, tt.accept)
	}
}

func TestDirection(t *testing.T) {
	for _, l := range []string{"ar", "he", "fa", "ur", "ar-SA"} {
		assert.Equal(t, "rtl", Direction(l), l)
	}
	for _, l := range []string{"en", "fr", "", "??"} {
		assert.Equal(t, "ltr", Direction(l), l)
	}
}

func TestMessages_English(t *testing.T) {
	tr := For("en", "")
	tok := &game.Token{ID: 1, Name: "Lisinopril"}

	got := tr.Messages(game.Result{Outcome: game.OutcomeCorrect, Token: tok, Condition: "Hypertension"})
	assert.Equal(t, []string{"Correct! Lisinopril is used to treat Hypertension."}, got)

	got = tr.Messages(game.Result{Outcome: game.OutcomeIncorrect, Token: tok, Condition: "Asthma"})
	assert.Equal(t, []string{"Not quite. Lisinopril is not used for Asthma."}, got)

	got = tr.Messages(game.Result{
		Outcome:    game.OutcomeCorrect,
		Token:      tok,
		Condition:  "Hypertension",
		Completion: &game.Completion{Correct: 6, Total: 8},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Game complete! You got 6 correct placements.", got[1])

	got = tr.Messages(game.Result{Outcome: game.OutcomeIncorrect, Token: tok, Completion: &game.Completion{Correct: 8, Total: 8, Perfect: true}})
	assert.Equal(t, "Perfect! You matched every medication correctly!", got[1])

	assert.Equal(t, []string{"This slot is already occupied!"}, tr.Messages(game.Result{Outcome: game.OutcomeOccupied}))
	assert.Equal(t, []string{"Pill removed. -10 points"}, tr.Messages(game.Result{Outcome: game.OutcomeRemoved, Token: tok}))
	assert.Empty(t, tr.Messages(game.Result{Outcome: game.OutcomeNothingToRemove}))
}

func TestMessages_Arabic(t *testing.T) {
	tr := For("ar", "")
	got := tr.Messages(game.Result{
		Outcome:   game.OutcomeCorrect,
		Token:     &game.Token{Name: "Insulin"},
		Condition: "Diabetes",
	})
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "الإنسولين")
	assert.Contains(t, got[0], "السكري")
}

func TestNames_FallBackToKey(t *testing.T) {
	tr := For("ar", "")
	assert.Equal(t, "Aspirin", tr.Medication("Aspirin"))
	assert.Equal(t, "Migraine", tr.Condition("Migraine"))
	assert.Equal(t, "Ibuprofen", For("en", "").Medication("Ibuprofen"))
}

func TestHowTo(t *testing.T) {
	h := For("en", "").HowTo()
	assert.Equal(t, "How to Play", h.Title)
	assert.Equal(t, []string{
		"Correct placement: +50 points",
		"Wrong placement: -25 points",
		"Removing a pill: -10 points",
	}, h.Scoring)
	assert.Len(t, h.Steps, 4)

	assert.Equal(t, "طريقة اللعب", For("ar", "").HowTo().Title)
}

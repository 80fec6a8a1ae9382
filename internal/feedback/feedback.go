// internal/feedback/feedback.go
//
// Player-facing text for engine outcomes.
// The engine only emits event tags; this package turns them into
// localized strings for whichever transport is talking to the player.
//
// Supported locales: en (default), ar. Text direction follows the base
// language: ar, he, fa and ur are right-to-left.

package feedback

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/robalobadob/pillgame/apps/go-server/internal/game"
)

// Supported lists the locales that have a message catalog, default first.
var Supported = []language.Tag{language.English, language.Arabic}

var (
	matcher  = language.NewMatcher(Supported)
	messages = buildCatalog()
)

var rtlBases = map[string]bool{"ar": true, "he": true, "fa": true, "ur": true}

// Direction returns "rtl" or "ltr" for a locale string such as "ar" or "en-GB".
func Direction(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "ltr"
	}
	base, _ := tag.Base()
	if rtlBases[base.String()] {
		return "rtl"
	}
	return "ltr"
}

// Translator renders messages for one locale.
type Translator struct {
	tag language.Tag
	p   *message.Printer
}

// For picks the best supported locale from an explicit language choice
// (e.g. a ?lang= value) and an Accept-Language header. The explicit
// choice wins when it names a supported locale.
func For(lang, acceptLanguage string) *Translator {
	_, idx := language.MatchStrings(matcher, lang, acceptLanguage)
	t := Supported[idx]
	return &Translator{tag: t, p: message.NewPrinter(t, message.Catalog(messages))}
}

// Lang is the BCP 47 code of the chosen locale.
func (t *Translator) Lang() string { return t.tag.String() }

// Dir is the text direction of the chosen locale.
func (t *Translator) Dir() string { return Direction(t.tag.String()) }

// Medication returns the display name of a medication.
func (t *Translator) Medication(name string) string {
	return t.p.Sprintf(message.Key("meds."+name, name))
}

// Condition returns the display name of a condition.
func (t *Translator) Condition(key string) string {
	return t.p.Sprintf(message.Key("conditions."+key, key))
}

// Event renders one feedback tag. res supplies the medication and
// condition names for placement events.
func (t *Translator) Event(ev game.Event, res game.Result) string {
	var med string
	if res.Token != nil {
		med = t.Medication(res.Token.Name)
	}
	cond := t.Condition(res.Condition)

	switch ev.Kind {
	case game.EventCorrect:
		return t.p.Sprintf("feedback.correct", med, cond)
	case game.EventIncorrect:
		return t.p.Sprintf("feedback.wrong", med, cond)
	case game.EventOccupied:
		return t.p.Sprintf("feedback.occupied")
	case game.EventRemoved:
		return t.p.Sprintf("feedback.removed")
	case game.EventCompletedPerfect:
		return t.p.Sprintf("feedback.perfect")
	case game.EventCompletedPartial:
		return t.p.Sprintf("feedback.completed", ev.Count)
	}
	return ""
}

// Messages renders every event of a result, in order.
func (t *Translator) Messages(res game.Result) []string {
	evs := res.Events()
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, t.Event(ev, res))
	}
	return out
}

// HowTo is the how-to-play panel.
type HowTo struct {
	Title        string   `json:"title"`
	ScoringTitle string   `json:"scoringTitle"`
	Scoring      []string `json:"scoring"`
	StepsTitle   string   `json:"stepsTitle"`
	Steps        []string `json:"steps"`
}

// HowTo renders the how-to-play panel.
func (t *Translator) HowTo() HowTo {
	return HowTo{
		Title:        t.p.Sprintf("howto.title"),
		ScoringTitle: t.p.Sprintf("howto.scoring"),
		Scoring: []string{
			t.p.Sprintf("howto.correct", game.PointsCorrect),
			t.p.Sprintf("howto.wrong", -game.PenaltyIncorrect),
			t.p.Sprintf("howto.remove", -game.PenaltyRemove),
		},
		StepsTitle: t.p.Sprintf("howto.steps"),
		Steps: []string{
			t.p.Sprintf("howto.step1"),
			t.p.Sprintf("howto.step2"),
			t.p.Sprintf("howto.step3"),
			t.p.Sprintf("howto.step4"),
		},
	}
}

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// internal/game/engine.go
//
// Core placement and scoring engine for a single blister pack session.
// Responsibilities:
//   - Build a fresh game from a catalog (New/Reset).
//   - Validate and apply placements (Place) and removals (Remove).
//   - Apply the score policy (ScoreDelta).
//   - Detect a filled board and grade it (AllFilled/Grade).
//
// Notes:
//   - All transitions are synchronous and touch only the receiver.
//   - A rejected transition returns an error and leaves the game unchanged.
//   - Callers that need snapshot semantics apply transitions to Clone().
package game

import (
	"github.com/robalobadob/pillgame/apps/go-server/internal/catalog"
)

// Score policy.
const (
	PointsCorrect    = 50
	PenaltyIncorrect = -25
	PenaltyRemove    = -10
)

// New constructs a game from the catalog: every medication in the pool,
// one container per condition with empty slots, score 0.
//
// Container ids are 1-based in catalog order; slot ids are index*2+1 and
// index*2+2 so that they are unique across the whole board.
func New(cat *catalog.Catalog) *Game {
	g := &Game{catalog: cat}
	g.Reset()
	return g
}

// Reset restores the initial state from the catalog. It is deterministic:
// two resets produce identical games.
func (g *Game) Reset() {
	cat := g.catalog
	g.Pool = make([]Token, 0, len(cat.Medications))
	for _, m := range cat.Medications {
		g.Pool = append(g.Pool, Token{ID: m.ID, Name: m.Name, Color: m.Color, Category: m.Category})
	}

	g.Containers = make([]Container, 0, len(cat.Conditions))
	for i, cond := range cat.Conditions {
		c := Container{
			ID:        i + 1,
			Condition: cond.Key,
			Icon:      cond.Icon,
			Accepted:  append([]string(nil), cond.Accepts...),
		}
		for j := range c.Slots {
			c.Slots[j] = Slot{ID: i*catalog.SlotsPerPack + j + 1, Mark: MarkEmpty}
		}
		g.Containers = append(g.Containers, c)
	}

	g.Score = 0
	g.Completed = false
}

// Catalog returns the catalog the game was built from.
func (g *Game) Catalog() *catalog.Catalog { return g.catalog }

// Place moves a pool token into an empty slot and scores it.
//
// Validation order:
//   - container and slot must exist (ErrContainerNotFound / ErrSlotNotFound);
//   - slot must be empty (ErrSlotOccupied);
//   - token must be in the pool (ErrTokenNotAvailable).
//
// On success the slot is marked correct when its container accepts the
// token name. If the placement fills the last empty slot the game becomes
// Completed and the Result carries the grade.
func (g *Game) Place(tokenID, containerID, slotID int) (Result, error) {
	c := g.container(containerID)
	if c == nil {
		return Result{Outcome: OutcomeNotFound}, ErrContainerNotFound
	}
	s := c.slot(slotID)
	if s == nil {
		return Result{Outcome: OutcomeNotFound, Condition: c.Condition}, ErrSlotNotFound
	}
	if !s.Empty() {
		return Result{Outcome: OutcomeOccupied, Condition: c.Condition}, ErrSlotOccupied
	}
	i := g.poolIndex(tokenID)
	if i < 0 {
		return Result{Outcome: OutcomeTokenNotAvailable, Condition: c.Condition}, ErrTokenNotAvailable
	}

	tok := g.Pool[i]
	g.Pool = append(g.Pool[:i:i], g.Pool[i+1:]...)

	outcome, mark := OutcomeIncorrect, MarkIncorrect
	if c.accepts(tok.Name) {
		outcome, mark = OutcomeCorrect, MarkCorrect
	}
	s.Token = &tok
	s.Mark = mark

	res := Result{Outcome: outcome, Token: &tok, Condition: c.Condition, Delta: ScoreDelta(outcome)}
	g.Score += res.Delta

	if AllFilled(g.Containers) {
		g.Completed = true
		grade := Grade(g.Containers)
		res.Completion = &grade
	}
	return res, nil
}

// Remove returns the token in a slot to the end of the pool.
// An empty slot is a no-op reported as OutcomeNothingToRemove with no
// penalty. A successful removal costs PenaltyRemove and always clears
// Completed.
func (g *Game) Remove(containerID, slotID int) (Result, error) {
	c := g.container(containerID)
	if c == nil {
		return Result{Outcome: OutcomeNotFound}, ErrContainerNotFound
	}
	s := c.slot(slotID)
	if s == nil {
		return Result{Outcome: OutcomeNotFound, Condition: c.Condition}, ErrSlotNotFound
	}
	if s.Empty() {
		return Result{Outcome: OutcomeNothingToRemove, Condition: c.Condition}, nil
	}

	tok := *s.Token
	s.Token = nil
	s.Mark = MarkEmpty
	g.Pool = append(g.Pool, tok)

	res := Result{Outcome: OutcomeRemoved, Token: &tok, Condition: c.Condition, Delta: ScoreDelta(OutcomeRemoved)}
	g.Score += res.Delta
	g.Completed = false
	return res, nil
}

// ScoreDelta maps an outcome to its score change.
func ScoreDelta(o Outcome) int {
	switch o {
	case OutcomeCorrect:
		return PointsCorrect
	case OutcomeIncorrect:
		return PenaltyIncorrect
	case OutcomeRemoved:
		return PenaltyRemove
	default:
		return 0
	}
}

// AllFilled reports whether every slot of every container holds a token.
func AllFilled(cs []Container) bool {
	for i := range cs {
		for _, s := range cs[i].Slots {
			if s.Empty() {
				return false
			}
		}
	}
	return true
}

// Grade counts correct slots over the whole board. Perfect means every
// slot is correct.
func Grade(cs []Container) Completion {
	var correct int
	for i := range cs {
		for _, s := range cs[i].Slots {
			if s.Mark == MarkCorrect {
				correct++
			}
		}
	}
	total := len(cs) * catalog.SlotsPerPack
	return Completion{Correct: correct, Total: total, Perfect: correct == total}
}

// Clone returns a deep copy that shares only immutable data (tokens,
// accepted names, catalog).
func (g *Game) Clone() *Game {
	out := &Game{
		Pool:       make([]Token, len(g.Pool)),
		Containers: make([]Container, len(g.Containers)),
		Score:      g.Score,
		Completed:  g.Completed,
		catalog:    g.catalog,
	}
	copy(out.Pool, g.Pool)
	copy(out.Containers, g.Containers)
	return out
}

// container looks up a container by id.
func (g *Game) container(id int) *Container {
	for i := range g.Containers {
		if g.Containers[i].ID == id {
			return &g.Containers[i]
		}
	}
	return nil
}

// poolIndex returns the pool position of a token id, or -1.
func (g *Game) poolIndex(tokenID int) int {
	for i := range g.Pool {
		if g.Pool[i].ID == tokenID {
			return i
		}
	}
	return -1
}

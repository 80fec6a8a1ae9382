package game

// Intent is an already-resolved player gesture. Presentation layers turn
// drags and clicks into intents; the engine never sees pointer details.
type Intent interface {
	apply(g *Game) (Result, error)
}

// PlaceIntent drops a pool token onto a slot.
type PlaceIntent struct {
	TokenID     int `json:"tokenId"`
	ContainerID int `json:"containerId"`
	SlotID      int `json:"slotId"`
}

// RemoveIntent takes the token out of a slot.
type RemoveIntent struct {
	ContainerID int `json:"containerId"`
	SlotID      int `json:"slotId"`
}

// ResetIntent restarts the game from its catalog.
type ResetIntent struct{}

func (i PlaceIntent) apply(g *Game) (Result, error) {
	return g.Place(i.TokenID, i.ContainerID, i.SlotID)
}

func (i RemoveIntent) apply(g *Game) (Result, error) {
	return g.Remove(i.ContainerID, i.SlotID)
}

func (ResetIntent) apply(g *Game) (Result, error) {
	g.Reset()
	return Result{Outcome: OutcomeReset}, nil
}

// Apply runs one intent against the game.
func (g *Game) Apply(in Intent) (Result, error) {
	return in.apply(g)
}

package game

import "fmt"

// Check verifies the structural invariants of a game:
//   - every catalog token is in exactly one place (pool XOR one slot);
//   - a slot is marked empty iff it holds no token;
//   - Completed is set iff every slot is filled.
//
// The session store runs it after every accepted transition.
func (g *Game) Check() error {
	seen := make(map[int]string, len(g.catalog.Medications))
	for _, t := range g.Pool {
		if where, dup := seen[t.ID]; dup {
			return fmt.Errorf("token %d in pool and %s", t.ID, where)
		}
		seen[t.ID] = "pool"
	}
	for _, c := range g.Containers {
		for _, s := range c.Slots {
			if s.Empty() != (s.Mark == MarkEmpty) {
				return fmt.Errorf("slot %d: mark %q with token %v", s.ID, s.Mark, s.Token)
			}
			if s.Empty() {
				continue
			}
			here := fmt.Sprintf("slot %d", s.ID)
			if where, dup := seen[s.Token.ID]; dup {
				return fmt.Errorf("token %d in %s and %s", s.Token.ID, where, here)
			}
			seen[s.Token.ID] = here
		}
	}
	for _, m := range g.catalog.Medications {
		if _, ok := seen[m.ID]; !ok {
			return fmt.Errorf("token %d is missing", m.ID)
		}
	}
	if len(seen) != len(g.catalog.Medications) {
		return fmt.Errorf("%d tokens on the table, catalog has %d", len(seen), len(g.catalog.Medications))
	}
	if g.Completed != AllFilled(g.Containers) {
		return fmt.Errorf("completed=%v but all filled=%v", g.Completed, !g.Completed)
	}
	return nil
}

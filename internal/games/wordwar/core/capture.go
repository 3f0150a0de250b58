package core

// Transition records a tile whose state changed during a capture pass.
type Transition struct {
	Index int
	From  LetterState
	To    LetterState
}

// CaptureResult summarises one capture pass.
type CaptureResult struct {
	Player1Delta int
	Player2Delta int
	Transitions  []Transition
}

// surroundedBy reports whether every present neighbour of index is controlled
// by p. Missing neighbours at the edges never block a surround.
func surroundedBy(g *Grid, index int, p Player) bool {
	for _, n := range g.Neighbors(index) {
		if n < 0 {
			continue
		}
		if !g.tiles[n].State.ControlledBy(p) {
			return false
		}
	}
	return true
}

// Capture runs a single in-place pass over every tile in index order,
// flipping played tiles between owned and surrounded states according to
// their neighbours, and returns the resulting score changes.
//
// Tiles later in the pass see the states already written for earlier tiles.
// The pass is not repeated until stable, so a chain of captures may take
// several turns to fully settle.
func Capture(g *Grid) CaptureResult {
	var res CaptureResult

	for i := range g.tiles {
		old := g.tiles[i].State
		if old == Unplayed {
			continue
		}

		next := old
		p1 := surroundedBy(g, i, Player1)
		switch {
		case p1:
			next = Player1Surrounded
		case old == Player1Surrounded:
			next = Player1Owned
		case surroundedBy(g, i, Player2):
			next = Player2Surrounded
		case old == Player2Surrounded:
			next = Player2Owned
		}

		if next == old {
			continue
		}
		g.tiles[i].State = next
		res.Transitions = append(res.Transitions, Transition{Index: i, From: old, To: next})

		oldOwner, newOwner := old.Owner(), next.Owner()
		if oldOwner == newOwner {
			continue
		}
		res.Player1Delta += indicator(newOwner == 1) - indicator(oldOwner == 1)
		res.Player2Delta += indicator(newOwner == -1) - indicator(oldOwner == -1)
	}

	return res
}

func indicator(b bool) int {
	if b {
		return 1
	}
	return 0
}

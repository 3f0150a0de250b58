// Package core provides the rules engine for the Word War grid game.
// This package is UI-agnostic, performs no I/O and is deterministic for a
// given random source.
package core

import "fmt"

// Player identifies one of the two sides.
type Player uint8

const (
	Player1 Player = iota
	Player2
)

// String returns a human-readable name for the player.
func (p Player) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "Unknown"
	}
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Owned returns the plain owned state for this player.
func (p Player) Owned() LetterState {
	if p == Player1 {
		return Player1Owned
	}
	return Player2Owned
}

// LetterState is the ownership state of a single tile.
type LetterState uint8

const (
	Unplayed LetterState = iota
	Player1Owned
	Player1Surrounded
	Player2Owned
	Player2Surrounded
)

var letterStateNames = [...]string{
	Unplayed:          "unplayed",
	Player1Owned:      "p1_owned",
	Player1Surrounded: "p1_surrounded",
	Player2Owned:      "p2_owned",
	Player2Surrounded: "p2_surrounded",
}

// String returns the canonical name of the state.
func (s LetterState) String() string {
	if int(s) < len(letterStateNames) {
		return letterStateNames[s]
	}
	return fmt.Sprintf("LetterState(%d)", uint8(s))
}

// Valid reports whether s is one of the defined states.
func (s LetterState) Valid() bool {
	return int(s) < len(letterStateNames)
}

// Owner returns +1 for player 1 control, -1 for player 2 control and 0 for
// unplayed tiles. Surrounded tiles count the same as owned ones.
func (s LetterState) Owner() int {
	switch s {
	case Player1Owned, Player1Surrounded:
		return 1
	case Player2Owned, Player2Surrounded:
		return -1
	default:
		return 0
	}
}

// Surrounded reports whether the tile is in either surrounded state.
func (s LetterState) Surrounded() bool {
	return s == Player1Surrounded || s == Player2Surrounded
}

// ControlledBy reports whether the tile is owned or surrounded by p.
func (s LetterState) ControlledBy(p Player) bool {
	if p == Player1 {
		return s == Player1Owned || s == Player1Surrounded
	}
	return s == Player2Owned || s == Player2Surrounded
}

// MarshalText implements encoding.TextMarshaler.
func (s LetterState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: letter state %d", ErrCorruptState, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *LetterState) UnmarshalText(text []byte) error {
	v, err := ParseLetterState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseLetterState parses the canonical name of a letter state.
func ParseLetterState(name string) (LetterState, error) {
	for i, n := range letterStateNames {
		if n == name {
			return LetterState(i), nil
		}
	}
	return Unplayed, fmt.Errorf("%w: unknown letter state %q", ErrCorruptState, name)
}

// Phase is the turn state machine position.
type Phase uint8

const (
	Player1Turn Phase = iota
	Player2Turn
	GameOver
)

var phaseNames = [...]string{
	Player1Turn: "player1_turn",
	Player2Turn: "player2_turn",
	GameOver:    "game_over",
}

// String returns the canonical name of the phase.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Mover returns the player whose turn it is. ok is false once the game is over.
func (p Phase) Mover() (player Player, ok bool) {
	switch p {
	case Player1Turn:
		return Player1, true
	case Player2Turn:
		return Player2, true
	default:
		return Player1, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("%w: phase %d", ErrCorruptState, uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	v, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePhase parses the canonical name of a phase.
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return Player1Turn, fmt.Errorf("%w: unknown phase %q", ErrCorruptState, name)
}

func turnOf(p Player) Phase {
	if p == Player1 {
		return Player1Turn
	}
	return Player2Turn
}

// TurnResult is the outcome of a turn submission.
// Every value except Success is a rule violation that leaves the game unchanged.
type TurnResult uint8

const (
	Success TurnResult = iota
	WordLessThanTwoLetters
	WordAlreadyPlayed
	WordIsPrefixOfPreviousTurn
	WordNotInDictionary
)

// String returns the canonical name of the result.
func (r TurnResult) String() string {
	switch r {
	case Success:
		return "success"
	case WordLessThanTwoLetters:
		return "word_less_than_two_letters"
	case WordAlreadyPlayed:
		return "word_already_played"
	case WordIsPrefixOfPreviousTurn:
		return "word_is_prefix_of_previous_turn"
	case WordNotInDictionary:
		return "word_not_in_dictionary"
	default:
		return fmt.Sprintf("TurnResult(%d)", uint8(r))
	}
}

// Message returns a sentence suitable for showing to the player.
func (r TurnResult) Message() string {
	switch r {
	case Success:
		return "Word played."
	case WordLessThanTwoLetters:
		return "Words must have at least two letters."
	case WordAlreadyPlayed:
		return "That word has already been played."
	case WordIsPrefixOfPreviousTurn:
		return "That word is a prefix of a word already played."
	case WordNotInDictionary:
		return "That word is not in the dictionary."
	default:
		return "Unknown result."
	}
}

// GameResult is the final outcome of a finished game.
type GameResult uint8

const (
	Player1Win GameResult = iota
	Player2Win
	Draw
)

// String returns the canonical name of the result.
func (r GameResult) String() string {
	switch r {
	case Player1Win:
		return "player1_win"
	case Player2Win:
		return "player2_win"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("GameResult(%d)", uint8(r))
	}
}

// ResultFor computes the result implied by the final scores.
func ResultFor(player1Points, player2Points int) GameResult {
	switch {
	case player1Points > player2Points:
		return Player1Win
	case player2Points > player1Points:
		return Player2Win
	default:
		return Draw
	}
}

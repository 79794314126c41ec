package scoundrel

// Finalize computes the score of a finished game. A win scores the health
// left; a loss scores minus the strength of the monsters still in the deck.
func Finalize(won bool, player Player, deck Deck) int {
	if won {
		return player.Health
	}
	return -deck.MonsterStrength()
}

// Stats aggregates results across games.
type Stats struct {
	Games     int
	Wins      int
	Losses    int
	BestScore int // meaningful only when Games > 0
}

// Record adds a finished game to the stats. BestScore is the max over recorded
// games, so with no games yet the first score becomes the best even when it
// is negative.
func (s *Stats) Record(score int, won bool) {
	if s.Games == 0 || score > s.BestScore {
		s.BestScore = score
	}
	s.Games++
	if won {
		s.Wins++
	} else {
		s.Losses++
	}
}

// WinRate returns the fraction of games won, or 0 with no games.
func (s Stats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

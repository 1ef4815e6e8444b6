package engine

import "time"

// AllocateTime turns a clock situation into a per-move budget: an even
// share of the remaining time plus most of the increment, capped so one
// long think can never flag the engine. ply is the game ply, used to
// estimate how many moves remain under sudden death.
func AllocateTime(remaining, increment time.Duration, movesToGo, ply int) time.Duration {
	if remaining <= 0 {
		return 0
	}

	mtg := movesToGo
	if mtg <= 0 {
		// Sudden death: expect fewer remaining moves as the game ages.
		mtg = 50 - ply/4
		if mtg < 10 {
			mtg = 10
		}
	}

	budget := remaining/time.Duration(mtg) + increment*9/10

	if limit := remaining * 8 / 10; budget > limit {
		budget = limit
	}
	if budget < 10*time.Millisecond {
		budget = 10 * time.Millisecond
	}
	return budget
}

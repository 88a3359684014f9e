package domain

const (
	// BaselineVotePoints is the flat award credited to a user when a podium
	// vote is first projected. Share and claim bonuses are applied by the
	// reward flow, not by sync.
	BaselineVotePoints = 3

	// Brand score weights for the three podium slots.
	FirstPlaceWeight  = 60
	SecondPlaceWeight = 30
	ThirdPlaceWeight  = 10

	// PodiumSize is the number of brand slots in a vote.
	PodiumSize = 3

	// StreakResetAge is how old (in hours) a user's latest vote may be before
	// the daily reset job zeroes their current streak.
	StreakResetAgeHours = 24
)

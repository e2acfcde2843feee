package common

const (
	// MinEntriesFloor is the smallest allowed minimum submission count of a
	// contest. A contest between fewer than two entries is not a contest.
	MinEntriesFloor = 2

	// MinVotingWindowMs is the smallest allowed gap between the submission
	// deadline and the resolution deadline, in milliseconds.
	MinVotingWindowMs = 3_600_000
)

var (
	// ErrPrizeBounds appears when a contest is created with a non-positive
	// prize pool.
	ErrPrizeBounds = "prize pool must be positive"
	// ErrVoteBounds appears when per-vote amount bounds are malformed.
	ErrVoteBounds = "invalid vote amount bounds"
	// ErrMinEntries appears when the minimum submission count is below
	// MinEntriesFloor.
	ErrMinEntries = "minimum submission count is too low"
	// ErrDurations appears when contest durations leave no room for the
	// voting phase.
	ErrDurations = "invalid contest durations"
)

// ValidateContestParams checks contest creation parameters shared by the
// registry and the contest instance. Durations are in milliseconds. It panics
// on the first violated bound.
func ValidateContestParams(prize, minVote, maxVote, minEntries, submissionDuration, totalDuration int) {
	if prize <= 0 {
		panic(ErrPrizeBounds)
	}
	if minVote <= 0 || maxVote < minVote {
		panic(ErrVoteBounds)
	}
	if minEntries < MinEntriesFloor {
		panic(ErrMinEntries)
	}
	if submissionDuration <= 0 || totalDuration < submissionDuration+MinVotingWindowMs {
		panic(ErrDurations)
	}
}

// ValidateDeadlines checks absolute contest deadlines, in milliseconds.
func ValidateDeadlines(submissionDeadline, resolutionDeadline int) {
	if submissionDeadline <= 0 || resolutionDeadline <= submissionDeadline {
		panic(ErrDurations)
	}
}

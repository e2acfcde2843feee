package contestconst

// Contest lifecycle phases. Transitions are monotonic: SUBMISSION advances to
// VOTING automatically once the minimum entry count is collected, VOTING (or a
// starved SUBMISSION) resolves into exactly one of the terminal phases.
const (
	PhaseSubmission = 1
	PhaseVoting     = 2
	PhaseEnded      = 3
	PhaseFailed     = 4
)

// Failure reason codes recorded with the terminal FAILED transition.
const (
	// ReasonNotEnoughSubmissions means the minimum submission count was not
	// reached by the submission deadline.
	ReasonNotEnoughSubmissions = 1
	// ReasonNoValidWinner means no submission received any vote or stake, so
	// every score is zero and naming a winner would be arbitrary.
	ReasonNoValidWinner = 2
)

// Scoring weights. The score of a submission is
// voteCount*AlphaWeight + (voteValue+stakeValue)*BetaWeight, so a single vote
// outweighs up to AlphaWeight units of monetary backing.
const (
	AlphaWeight = 100
	BetaWeight  = 1
)

// Reward split policy, in basis points.
const (
	// CreatorShareBasisPoints is the creator's cut of the pooled vote and
	// stake value on successful resolution; the rest goes to stakers of the
	// winning submission.
	CreatorShareBasisPoints = 2_000
	// StakeCapBasisPoints limits the total stake of a single correlation id
	// across all submissions relative to the prize pool.
	StakeCapBasisPoints = 5_000

	BasisPointsDenominator = 10_000
)

// Action tags bound into signed authorization payloads.
const (
	ActionSubmit = 1
	ActionVote   = 2
	ActionStake  = 3
)

const (
	// ErrInvalidPhase is returned on an action attempted outside its allowed
	// phase.
	ErrInvalidPhase = "invalid contest phase"
	// ErrDeadlinePassed is returned on an action attempted after its phase
	// deadline.
	ErrDeadlinePassed = "deadline has passed"
	// ErrDeadlineNotReached is returned on a resolution attempt before the
	// deadline.
	ErrDeadlineNotReached = "deadline has not been reached yet"

	// ErrInvalidSignature is returned when the recovered signer does not
	// match the contest authority key.
	ErrInvalidSignature = "invalid authority signature"
	// ErrSignatureReplayed is returned on re-presentation of a consumed
	// authority signature.
	ErrSignatureReplayed = "authority signature already consumed"
	// ErrAuthorizationExpired is returned when the freshness bound of an
	// authority signature has elapsed.
	ErrAuthorizationExpired = "authorization expired"

	// ErrDuplicateSubmission is returned on a second submission from the
	// same identity.
	ErrDuplicateSubmission = "identity already submitted"
	// ErrDuplicateCorrelation is returned on reuse of a correlation id
	// across submissions.
	ErrDuplicateCorrelation = "correlation id already used"
	// ErrDuplicateVote is returned on a second vote of the same voter for
	// the same submission.
	ErrDuplicateVote = "vote already recorded"
	// ErrDuplicateStake is returned on a second stake of the same
	// correlation id on the same submission.
	ErrDuplicateStake = "stake already recorded"

	// ErrVoteOutOfBounds is returned when a vote amount violates the
	// configured per-vote bounds.
	ErrVoteOutOfBounds = "vote amount out of bounds"
	// ErrStakeOutOfBounds is returned on a non-positive stake amount.
	ErrStakeOutOfBounds = "stake amount out of bounds"
	// ErrStakeCapExceeded is returned when a stake would push the
	// correlation id over its global cap.
	ErrStakeCapExceeded = "stake cap exceeded"

	// NotFoundError is returned if the referenced submission is missing.
	NotFoundError = "submission does not exist"

	// ErrAlreadyClaimed is returned on repeated claim of the same reward.
	ErrAlreadyClaimed = "already claimed"
	// ErrNothingToClaim is returned when there is no reward for the caller.
	ErrNothingToClaim = "nothing to claim"
	// ErrNoPendingRefund is returned on withdrawal with an empty pending
	// balance.
	ErrNoPendingRefund = "no pending refund"

	// ErrReentrancy is returned on an attempt to re-enter a state-mutating
	// method while another one is in progress.
	ErrReentrancy = "reentrant call"
)

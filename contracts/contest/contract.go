package contest

import (
	"github.com/contesthub/contest-contracts/common"
	cst "github.com/contesthub/contest-contracts/contracts/contest/contestconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// ContestConfig is the immutable per-contest configuration provided by
	// the registry at deployment. Deadlines are absolute block timestamps in
	// milliseconds.
	ContestConfig struct {
		Custodian          interop.Hash160
		Creator            interop.Hash160
		AuthorityKey       interop.PublicKey
		Prize              int
		MinVote            int
		MaxVote            int
		MinEntries         int
		SubmissionDeadline int
		ResolutionDeadline int
	}

	// Submission is a single contest entry. The aggregate counters are the
	// only fields mutated after creation.
	Submission struct {
		ID            int
		Submitter     interop.Hash160
		CorrelationID []byte
		ContentURL    string
		ContentType   string
		CreatedAt     int
		VoteCount     int
		VoteValue     int
		StakeValue    int
	}

	// VoteRecord is a vote of a single voter for a single submission.
	VoteRecord struct {
		Voter  interop.Hash160
		Amount int
	}

	// StakeRecord is a stake of a single correlation id on a single
	// submission. Claimed is flipped exactly once, at payout or refund time.
	StakeRecord struct {
		CorrelationID []byte
		Staker        interop.Hash160
		Amount        int
		Claimed       bool
	}

	// ContestState is a snapshot of the mutable contest state.
	ContestState struct {
		Phase           int
		SubmissionCount int
		PooledValue     int
		Winner          int
		FailureReason   int
		CreatorShare    int
		StakerShare     int
		PrizeClaimed    bool
		CreatorClaimed  bool
	}
)

const (
	configKey         = 'c'
	phaseKey          = 'f'
	countKey          = 'n'
	pooledKey         = 't'
	winnerKey         = 'w'
	reasonKey         = 'e'
	prizeClaimedKey   = 'q'
	creatorClaimedKey = 'm'
	creatorShareKey   = 'y'
	stakerShareKey    = 'h'
	lockKey           = 'l'

	submissionPrefix  = 's'
	submitterPrefix   = 'S'
	correlationPrefix = 'C'
	votePrefix        = 'v'
	stakePrefix       = 'z'
	stakeTotalPrefix  = 'g'
	usedSigPrefix     = 'u'
	refundPrefix      = 'b'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]any)
	cfg := ContestConfig{
		Custodian:          args[0].(interop.Hash160),
		Creator:            args[1].(interop.Hash160),
		AuthorityKey:       args[2].(interop.PublicKey),
		Prize:              args[3].(int),
		MinVote:            args[4].(int),
		MaxVote:            args[5].(int),
		MinEntries:         args[6].(int),
		SubmissionDeadline: args[7].(int),
		ResolutionDeadline: args[8].(int),
	}

	if len(cfg.Custodian) != interop.Hash160Len || len(cfg.Creator) != interop.Hash160Len {
		panic("invalid account parameters")
	}
	if len(cfg.AuthorityKey) != interop.PublicKeyCompressedLen {
		panic("invalid authority key")
	}
	if cfg.Prize <= 0 {
		panic(common.ErrPrizeBounds)
	}
	if cfg.MinVote <= 0 || cfg.MaxVote < cfg.MinVote {
		panic(common.ErrVoteBounds)
	}
	if cfg.MinEntries < common.MinEntriesFloor {
		panic(common.ErrMinEntries)
	}
	common.ValidateDeadlines(cfg.SubmissionDeadline, cfg.ResolutionDeadline)

	ctx := storage.GetContext()
	common.SetSerialized(ctx, configKey, cfg)
	storage.Put(ctx, phaseKey, cst.PhaseSubmission)

	runtime.Log("contest contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("contest contract updated")
}

// Submit registers a new contest entry on behalf of the submitter. It can be
// invoked during the SUBMISSION phase only, before the submission deadline,
// with the submitter's witness and an authority signature endorsing exactly
// this action. Each identity and each correlation id can enter a contest only
// once. Returns the creation index of the new submission (1-based).
//
// The moment the submission count reaches the configured minimum, the contest
// advances to the VOTING phase within the same call.
//
// It produces SubmissionAccepted and, on the phase transition, PhaseChanged
// notifications.
func Submit(submitter interop.Hash160, correlationID []byte, contentURL, contentType string, validUntil int, signature interop.Signature) int {
	ctx := storage.GetContext()
	takeLock(ctx)

	cfg := getConfig(ctx)
	if currentPhase(ctx) != cst.PhaseSubmission {
		panic(cst.ErrInvalidPhase)
	}
	if runtime.GetTime() > cfg.SubmissionDeadline {
		panic(cst.ErrDeadlinePassed)
	}
	if len(correlationID) == 0 {
		panic("empty correlation id")
	}
	if len(contentURL) == 0 {
		panic("empty content reference")
	}

	common.CheckOwnerWitness(submitter)

	submitterKey := append([]byte{submitterPrefix}, submitter...)
	if storage.Get(ctx, submitterKey) != nil {
		panic(cst.ErrDuplicateSubmission)
	}
	corrKey := append([]byte{correlationPrefix}, crypto.Sha256(correlationID)...)
	if storage.Get(ctx, corrKey) != nil {
		panic(cst.ErrDuplicateCorrelation)
	}

	authorize(ctx, cfg, cst.ActionSubmit, submitter, 0, correlationID, 0, []byte(contentURL), validUntil, signature)

	id := common.GetIntOrZero(ctx, countKey) + 1
	sub := Submission{
		ID:            id,
		Submitter:     submitter,
		CorrelationID: correlationID,
		ContentURL:    contentURL,
		ContentType:   contentType,
		CreatedAt:     runtime.GetTime(),
	}

	storage.Put(ctx, countKey, id)
	storage.Put(ctx, submitterKey, id)
	storage.Put(ctx, corrKey, id)
	common.SetSerialized(ctx, submissionKey(id), sub)

	runtime.Notify("SubmissionAccepted", id, submitter, correlationID)

	if id == cfg.MinEntries {
		setPhase(ctx, cst.PhaseVoting)
	}

	releaseLock(ctx)
	return id
}

// Vote records a vote of the voter for the specified submission and moves the
// vote amount into the contest escrow. It can be invoked during the VOTING
// phase only, before the resolution deadline, with the voter's witness and an
// authority signature binding the exact amount. One vote per voter per
// submission is allowed; the amount must lie within the configured per-vote
// bounds.
//
// It produces VoteAccepted notification.
func Vote(submissionID int, voter interop.Hash160, amount, validUntil int, signature interop.Signature) {
	ctx := storage.GetContext()
	takeLock(ctx)

	cfg := getConfig(ctx)
	if currentPhase(ctx) != cst.PhaseVoting {
		panic(cst.ErrInvalidPhase)
	}
	if runtime.GetTime() > cfg.ResolutionDeadline {
		panic(cst.ErrDeadlinePassed)
	}
	if amount < cfg.MinVote || amount > cfg.MaxVote {
		panic(cst.ErrVoteOutOfBounds)
	}

	common.CheckOwnerWitness(voter)

	sub := getSubmission(ctx, submissionID)
	voteKey := voteRecordKey(submissionID, voter)
	if storage.Get(ctx, voteKey) != nil {
		panic(cst.ErrDuplicateVote)
	}

	authorize(ctx, cfg, cst.ActionVote, voter, submissionID, []byte{}, amount, []byte{}, validUntil, signature)

	common.SetSerialized(ctx, voteKey, VoteRecord{Voter: voter, Amount: amount})
	sub.VoteCount++
	sub.VoteValue += amount
	common.SetSerialized(ctx, submissionKey(submissionID), sub)
	storage.Put(ctx, pooledKey, common.GetIntOrZero(ctx, pooledKey)+amount)

	common.CustodianTransfer(cfg.Custodian, voter, runtime.GetExecutingScriptHash(),
		amount, common.EscrowDepositDetails(submissionID))

	runtime.Notify("VoteAccepted", submissionID, voter, amount)
	releaseLock(ctx)
}

// Stake locks the staker's funds behind the specified submission. It can be
// invoked during the VOTING phase only, before the resolution deadline, with
// the staker's witness and an authority signature binding the exact amount
// and correlation id. A correlation id can stake once per submission; its
// total stake across all submissions is capped relative to the prize pool.
//
// It produces StakeAccepted notification.
func Stake(submissionID int, staker interop.Hash160, correlationID []byte, amount, validUntil int, signature interop.Signature) {
	ctx := storage.GetContext()
	takeLock(ctx)

	cfg := getConfig(ctx)
	if currentPhase(ctx) != cst.PhaseVoting {
		panic(cst.ErrInvalidPhase)
	}
	if runtime.GetTime() > cfg.ResolutionDeadline {
		panic(cst.ErrDeadlinePassed)
	}
	if amount <= 0 {
		panic(cst.ErrStakeOutOfBounds)
	}
	if len(correlationID) == 0 {
		panic("empty correlation id")
	}

	common.CheckOwnerWitness(staker)

	sub := getSubmission(ctx, submissionID)
	corrHash := crypto.Sha256(correlationID)
	stakeKey := stakeRecordKey(submissionID, corrHash)
	if storage.Get(ctx, stakeKey) != nil {
		panic(cst.ErrDuplicateStake)
	}

	stakeCap := cfg.Prize * cst.StakeCapBasisPoints / cst.BasisPointsDenominator
	totalKey := append([]byte{stakeTotalPrefix}, corrHash...)
	staked := common.GetIntOrZero(ctx, totalKey)
	if staked+amount > stakeCap {
		panic(cst.ErrStakeCapExceeded)
	}

	authorize(ctx, cfg, cst.ActionStake, staker, submissionID, correlationID, amount, []byte{}, validUntil, signature)

	common.SetSerialized(ctx, stakeKey, StakeRecord{
		CorrelationID: correlationID,
		Staker:        staker,
		Amount:        amount,
	})
	storage.Put(ctx, totalKey, staked+amount)
	sub.StakeValue += amount
	common.SetSerialized(ctx, submissionKey(submissionID), sub)
	storage.Put(ctx, pooledKey, common.GetIntOrZero(ctx, pooledKey)+amount)

	common.CustodianTransfer(cfg.Custodian, staker, runtime.GetExecutingScriptHash(),
		amount, common.EscrowDepositDetails(submissionID))

	runtime.Notify("StakeAccepted", submissionID, correlationID, staker, amount)
	releaseLock(ctx)
}

// Resolve finishes the contest once the resolution deadline has passed. It
// can be invoked by anyone to prevent hostage contests. A contest still in
// the SUBMISSION phase fails with ReasonNotEnoughSubmissions; a voting
// contest where no submission received any backing fails with
// ReasonNoValidWinner; otherwise the winner is determined and the contest
// transitions to ENDED with the pooled vote and stake value split between
// the creator and the winning submission's stakers. If the winning
// submission has no direct stakes, the split is skipped and the whole pooled
// value is credited back to the contributors through the refund ledger.
//
// All payouts are pull-based, see ClaimPrize, ClaimCreatorReward,
// ClaimStakerReward and WithdrawRefund.
//
// It produces PhaseChanged and either WinnerDetermined (with optional
// StakerShareRefunded) or ContestFailed notifications.
func Resolve() {
	ctx := storage.GetContext()
	takeLock(ctx)

	cfg := getConfig(ctx)
	phase := currentPhase(ctx)
	if phase != cst.PhaseSubmission && phase != cst.PhaseVoting {
		panic(cst.ErrInvalidPhase)
	}
	if runtime.GetTime() <= cfg.ResolutionDeadline {
		panic(cst.ErrDeadlineNotReached)
	}

	if phase == cst.PhaseSubmission {
		failContest(ctx, cfg, cst.ReasonNotEnoughSubmissions)
		releaseLock(ctx)
		return
	}

	winner := determineWinner(ctx)
	if winner.ID == 0 {
		failContest(ctx, cfg, cst.ReasonNoValidWinner)
		releaseLock(ctx)
		return
	}

	storage.Put(ctx, winnerKey, winner.ID)
	setPhase(ctx, cst.PhaseEnded)

	pooled := common.GetIntOrZero(ctx, pooledKey)
	if winner.StakeValue == 0 {
		// Nobody staked on the winner, the staker share cannot be
		// distributed. Give the pooled value back to the contributors
		// instead of paying the wrong parties.
		if pooled > 0 {
			creditContributorRefunds(ctx)
			runtime.Notify("StakerShareRefunded", pooled)
		}
	} else {
		creatorShare := pooled * cst.CreatorShareBasisPoints / cst.BasisPointsDenominator
		storage.Put(ctx, creatorShareKey, creatorShare)
		storage.Put(ctx, stakerShareKey, pooled-creatorShare)
	}

	runtime.Notify("WinnerDetermined", winner.ID, winner.Submitter)
	releaseLock(ctx)
}

// FailContest fails a contest that has not collected the minimum submission
// count by the submission deadline without waiting for the resolution
// deadline. It can be invoked only by the contest creator. The prize pool and
// any recorded contributions are credited to the refund ledger.
//
// It produces PhaseChanged, ContestFailed and RefundCredited notifications.
func FailContest() {
	ctx := storage.GetContext()
	takeLock(ctx)

	cfg := getConfig(ctx)
	if currentPhase(ctx) != cst.PhaseSubmission {
		panic(cst.ErrInvalidPhase)
	}
	if runtime.GetTime() <= cfg.SubmissionDeadline {
		panic(cst.ErrDeadlineNotReached)
	}

	common.CheckCreatorWitness(cfg.Creator)

	failContest(ctx, cfg, cst.ReasonNotEnoughSubmissions)
	releaseLock(ctx)
}

// ClaimPrize transfers the whole prize pool to the winning submission's
// submitter. It can be invoked once, by the winner, after a successful
// resolution.
//
// It produces PrizeClaimed notification.
func ClaimPrize() {
	ctx := storage.GetContext()
	takeLock(ctx)

	cfg := getConfig(ctx)
	if currentPhase(ctx) != cst.PhaseEnded {
		panic(cst.ErrInvalidPhase)
	}

	winner := getSubmission(ctx, storage.Get(ctx, winnerKey).(int))
	common.CheckOwnerWitness(winner.Submitter)

	if storage.Get(ctx, prizeClaimedKey) != nil {
		panic(cst.ErrAlreadyClaimed)
	}
	storage.Put(ctx, prizeClaimedKey, []byte{1})

	common.CustodianTransfer(cfg.Custodian, runtime.GetExecutingScriptHash(),
		winner.Submitter, cfg.Prize, common.PrizeDetails())

	runtime.Notify("PrizeClaimed", winner.Submitter, cfg.Prize)
	releaseLock(ctx)
}

// ClaimCreatorReward transfers the creator's share of the pooled vote and
// stake value to the contest creator. It can be invoked once, by the creator,
// after a successful resolution with a non-empty staker ledger.
//
// It produces CreatorRewardClaimed notification.
func ClaimCreatorReward() {
	ctx := storage.GetContext()
	takeLock(ctx)

	cfg := getConfig(ctx)
	if currentPhase(ctx) != cst.PhaseEnded {
		panic(cst.ErrInvalidPhase)
	}

	common.CheckCreatorWitness(cfg.Creator)

	if storage.Get(ctx, creatorClaimedKey) != nil {
		panic(cst.ErrAlreadyClaimed)
	}

	share := common.GetIntOrZero(ctx, creatorShareKey)
	if share == 0 {
		panic(cst.ErrNothingToClaim)
	}
	storage.Put(ctx, creatorClaimedKey, []byte{1})

	common.CustodianTransfer(cfg.Custodian, runtime.GetExecutingScriptHash(),
		cfg.Creator, share, common.CreatorRewardDetails())

	runtime.Notify("CreatorRewardClaimed", cfg.Creator, share)
	releaseLock(ctx)
}

// ClaimStakerReward transfers the correlation id's pro-rata cut of the staker
// share to the account that staked on the winning submission. The payout is
// stakerShare*stakeAmount/winnerTotalStake, the integer division remainder
// stays on the escrow account. It can be invoked once per winning stake, by
// the staking account, after a successful resolution.
//
// It produces StakerRewardClaimed notification.
func ClaimStakerReward(correlationID []byte) {
	ctx := storage.GetContext()
	takeLock(ctx)

	cfg := getConfig(ctx)
	if currentPhase(ctx) != cst.PhaseEnded {
		panic(cst.ErrInvalidPhase)
	}

	winnerID := storage.Get(ctx, winnerKey).(int)
	stakeKey := stakeRecordKey(winnerID, crypto.Sha256(correlationID))
	data := storage.Get(ctx, stakeKey)
	if data == nil {
		panic(cst.ErrNothingToClaim)
	}
	rec := std.Deserialize(data.([]byte)).(StakeRecord)

	common.CheckOwnerWitness(rec.Staker)

	if rec.Claimed {
		panic(cst.ErrAlreadyClaimed)
	}

	share := common.GetIntOrZero(ctx, stakerShareKey)
	if share == 0 {
		panic(cst.ErrNothingToClaim)
	}

	winner := getSubmission(ctx, winnerID)
	payout := share * rec.Amount / winner.StakeValue

	rec.Claimed = true
	common.SetSerialized(ctx, stakeKey, rec)

	common.CustodianTransfer(cfg.Custodian, runtime.GetExecutingScriptHash(),
		rec.Staker, payout, common.StakerRewardDetails(correlationID))

	runtime.Notify("StakerRewardClaimed", correlationID, rec.Staker, payout)
	releaseLock(ctx)
}

// WithdrawRefund transfers the account's pending refund balance back to the
// account. Refunds are credited by the failure path and by the
// no-winning-stakers fallback; withdrawal is available once the contest is
// terminal. The pending balance is zeroed before the transfer.
//
// It produces RefundWithdrawn notification.
func WithdrawRefund(account interop.Hash160) {
	ctx := storage.GetContext()
	takeLock(ctx)

	phase := currentPhase(ctx)
	if phase != cst.PhaseEnded && phase != cst.PhaseFailed {
		panic(cst.ErrInvalidPhase)
	}

	common.CheckOwnerWitness(account)

	key := append([]byte{refundPrefix}, account...)
	amount := common.GetIntOrZero(ctx, key)
	if amount == 0 {
		panic(cst.ErrNoPendingRefund)
	}
	storage.Delete(ctx, key)

	cfg := getConfig(ctx)
	common.CustodianTransfer(cfg.Custodian, runtime.GetExecutingScriptHash(),
		account, amount, common.RefundDetails())

	runtime.Notify("RefundWithdrawn", account, amount)
	releaseLock(ctx)
}

// Phase returns the stored contest phase. Passing a deadline changes which
// operations are allowed but never moves the phase by itself: a contest past
// its resolution deadline keeps reporting the last active phase until the
// permissionless Resolve records the terminal one.
func Phase() int {
	return storage.Get(storage.GetReadOnlyContext(), phaseKey).(int)
}

// Config returns the immutable contest configuration.
func Config() ContestConfig {
	return getConfig(storage.GetReadOnlyContext())
}

// State returns a snapshot of the mutable contest state. Winner is valid only
// in the ENDED phase, FailureReason only in the FAILED one.
func State() ContestState {
	ctx := storage.GetReadOnlyContext()
	return ContestState{
		Phase:           storage.Get(ctx, phaseKey).(int),
		SubmissionCount: common.GetIntOrZero(ctx, countKey),
		PooledValue:     common.GetIntOrZero(ctx, pooledKey),
		Winner:          common.GetIntOrZero(ctx, winnerKey),
		FailureReason:   common.GetIntOrZero(ctx, reasonKey),
		CreatorShare:    common.GetIntOrZero(ctx, creatorShareKey),
		StakerShare:     common.GetIntOrZero(ctx, stakerShareKey),
		PrizeClaimed:    storage.Get(ctx, prizeClaimedKey) != nil,
		CreatorClaimed:  storage.Get(ctx, creatorClaimedKey) != nil,
	}
}

// GetSubmission returns the submission with the specified creation index.
//
// If the submission doesn't exist, it panics with NotFoundError.
func GetSubmission(id int) Submission {
	return getSubmission(storage.GetReadOnlyContext(), id)
}

// ListSubmissions returns an iterator over all submissions of the contest.
// The iterator items are Submission structures.
func ListSubmissions() iterator.Iterator {
	return storage.Find(storage.GetReadOnlyContext(), []byte{submissionPrefix},
		storage.ValuesOnly|storage.DeserializeValues)
}

// VoteOf returns the amount the voter has put behind the specified
// submission, zero if there is no such vote.
func VoteOf(submissionID int, voter interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, voteRecordKey(submissionID, voter))
	if data == nil {
		return 0
	}
	return std.Deserialize(data.([]byte)).(VoteRecord).Amount
}

// StakeOf returns the amount the correlation id has staked on the specified
// submission, zero if there is no such stake.
func StakeOf(submissionID int, correlationID []byte) int {
	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, stakeRecordKey(submissionID, crypto.Sha256(correlationID)))
	if data == nil {
		return 0
	}
	return std.Deserialize(data.([]byte)).(StakeRecord).Amount
}

// PendingRefund returns the account's refund balance available for
// withdrawal.
func PendingRefund(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntOrZero(ctx, append([]byte{refundPrefix}, account...))
}

// StakerRewardOf returns the unclaimed staker reward of the correlation id,
// zero if the contest is not successfully resolved, the correlation id did
// not stake on the winner or the reward has been claimed already.
func StakerRewardOf(correlationID []byte) int {
	ctx := storage.GetReadOnlyContext()
	if storage.Get(ctx, phaseKey).(int) != cst.PhaseEnded {
		return 0
	}

	share := common.GetIntOrZero(ctx, stakerShareKey)
	if share == 0 {
		return 0
	}

	winnerID := storage.Get(ctx, winnerKey).(int)
	data := storage.Get(ctx, stakeRecordKey(winnerID, crypto.Sha256(correlationID)))
	if data == nil {
		return 0
	}
	rec := std.Deserialize(data.([]byte)).(StakeRecord)
	if rec.Claimed {
		return 0
	}

	return share * rec.Amount / getSubmission(ctx, winnerID).StakeValue
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// authorize verifies the authority's endorsement of an action and marks the
// signature consumed, all within the calling transaction. The payload layout
// is fixed for every action kind; the executing contract hash as the first
// element binds the signature to this very contest, validUntil bounds its
// freshness.
func authorize(ctx storage.Context, cfg ContestConfig, action int, caller interop.Hash160, submissionID int, correlationID []byte, amount int, detail []byte, validUntil int, sig interop.Signature) {
	if runtime.GetTime() > validUntil {
		panic(cst.ErrAuthorizationExpired)
	}

	sigKey := append([]byte{usedSigPrefix}, crypto.Sha256(sig)...)
	if storage.Get(ctx, sigKey) != nil {
		panic(cst.ErrSignatureReplayed)
	}

	payload := std.Serialize([]any{
		runtime.GetExecutingScriptHash(),
		action,
		caller,
		submissionID,
		correlationID,
		amount,
		detail,
		validUntil,
	})
	if !crypto.VerifyWithECDsa(payload, cfg.AuthorityKey, sig, crypto.Secp256r1) {
		panic(cst.ErrInvalidSignature)
	}

	storage.Put(ctx, sigKey, []byte{1})
}

// determineWinner scores every submission and picks the best one. Ties are
// broken by raw vote count, then by the lowest creation index. Returns an
// empty submission (ID 0) when the maximum score is zero.
func determineWinner(ctx storage.Context) Submission {
	var (
		best      Submission
		bestScore int
	)

	it := storage.Find(ctx, []byte{submissionPrefix}, storage.ValuesOnly|storage.DeserializeValues)
	for iterator.Next(it) {
		sub := iterator.Value(it).(Submission)
		score := sub.VoteCount*cst.AlphaWeight + (sub.VoteValue+sub.StakeValue)*cst.BetaWeight
		if score == 0 {
			continue
		}

		switch {
		case score > bestScore:
		case score == bestScore && sub.VoteCount > best.VoteCount:
		case score == bestScore && sub.VoteCount == best.VoteCount && sub.ID < best.ID:
		default:
			continue
		}

		best = sub
		bestScore = score
	}

	return best
}

// failContest performs the terminal FAILED transition: the prize pool is
// credited back to the creator and every recorded vote and stake to its
// payer. All refunds are pull-based, see WithdrawRefund.
func failContest(ctx storage.Context, cfg ContestConfig, reason int) {
	setPhase(ctx, cst.PhaseFailed)
	storage.Put(ctx, reasonKey, reason)

	creditRefund(ctx, cfg.Creator, cfg.Prize)
	creditContributorRefunds(ctx)

	runtime.Notify("ContestFailed", reason)
}

// creditContributorRefunds credits every recorded vote and every unclaimed
// stake back to its payer in the pending refund ledger. Stakes are marked
// claimed so that no staker reward can be taken for them afterwards.
func creditContributorRefunds(ctx storage.Context) {
	it := storage.Find(ctx, []byte{votePrefix}, storage.ValuesOnly|storage.DeserializeValues)
	for iterator.Next(it) {
		rec := iterator.Value(it).(VoteRecord)
		creditRefund(ctx, rec.Voter, rec.Amount)
	}

	it = storage.Find(ctx, []byte{stakePrefix}, storage.DeserializeValues)
	for iterator.Next(it) {
		kv := iterator.Value(it).(struct {
			key    []byte
			record StakeRecord
		})
		if kv.record.Claimed {
			continue
		}

		kv.record.Claimed = true
		common.SetSerialized(ctx, kv.key, kv.record)
		creditRefund(ctx, kv.record.Staker, kv.record.Amount)
	}
}

func creditRefund(ctx storage.Context, account interop.Hash160, amount int) {
	if amount == 0 {
		return
	}

	key := append([]byte{refundPrefix}, account...)
	storage.Put(ctx, key, common.GetIntOrZero(ctx, key)+amount)
	runtime.Notify("RefundCredited", account, amount)
}

func setPhase(ctx storage.Context, phase int) {
	storage.Put(ctx, phaseKey, phase)
	runtime.Notify("PhaseChanged", phase)
}

func currentPhase(ctx storage.Context) int {
	return storage.Get(ctx, phaseKey).(int)
}

func getConfig(ctx storage.Context) ContestConfig {
	data := storage.Get(ctx, configKey)
	return std.Deserialize(data.([]byte)).(ContestConfig)
}

func getSubmission(ctx storage.Context, id int) Submission {
	data := storage.Get(ctx, submissionKey(id))
	if data == nil {
		panic(cst.NotFoundError)
	}
	return std.Deserialize(data.([]byte)).(Submission)
}

func submissionKey(id int) []byte {
	return append([]byte{submissionPrefix}, convert.ToBytes(id)...)
}

func voteRecordKey(id int, voter interop.Hash160) []byte {
	key := append([]byte{votePrefix}, convert.ToBytes(id)...)
	return append(key, voter...)
}

func stakeRecordKey(id int, corrHash interop.Hash256) []byte {
	key := append([]byte{stakePrefix}, convert.ToBytes(id)...)
	return append(key, corrHash...)
}

// takeLock guards a state-mutating entry point against reentrancy through the
// custodian call surface. A panic reverts the lock write together with
// everything else, so the lock is released on every exit path.
func takeLock(ctx storage.Context) {
	if storage.Get(ctx, lockKey) != nil {
		panic(cst.ErrReentrancy)
	}
	storage.Put(ctx, lockKey, []byte{1})
}

func releaseLock(ctx storage.Context) {
	storage.Delete(ctx, lockKey)
}

package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// TestContestWinnerScoring covers the scoring formula with a submission
// winning on vote count against one winning on monetary value, and the refund
// fallback for a winner nobody staked on.
func TestContestWinnerScoring(t *testing.T) {
	f := newContestFixture(t, "scoring-check", defaultContestParams())

	accA := f.e.NewAccount(t)
	accB := f.e.NewAccount(t)
	f.submit(t, accA, 1, "neofs://entryA")
	f.submit(t, accB, 2, "neofs://entryB")

	// A stake on the losing submission, to be refunded with everything else.
	stakerL := f.e.NewAccount(t)
	corrL := newCorrelationID()
	f.stake(t, stakerL, 1, corrL, 50)

	// Five cheap votes for A against two expensive votes for B. Scores are
	// 5*100+(500+50) for A and 2*100+900 for B, B wins on backed value.
	votersA := make([]neotest.Signer, 5)
	for i := range votersA {
		votersA[i] = f.e.NewAccount(t)
		f.vote(t, votersA[i], 1, 100)
	}
	votersB := make([]neotest.Signer, 2)
	for i := range votersB {
		votersB[i] = f.e.NewAccount(t)
		f.vote(t, votersB[i], 2, 450)
	}

	rando := f.e.NewAccount(t)
	f.invoker(votersA[0]).InvokeFail(t, "invalid contest phase",
		"withdrawRefund", votersA[0].ScriptHash())
	f.invoker(rando).InvokeFail(t, "deadline has not been reached yet", "resolve")

	warpTime(t, f.e, f.resolutionDeadline)

	f.invoker(votersA[0]).InvokeFail(t, "deadline has passed",
		"vote", 2, votersA[0].ScriptHash(), 100, f.validUntil(t), randomBytes(64))

	// The deadline gates operations but does not move the reported phase,
	// only resolve records the terminal one.
	require.EqualValues(t, 2, testInt(t, f.invoker(rando), "phase"))

	// Resolution is permissionless.
	f.invoker(rando).Invoke(t, stackitem.Null{}, "resolve")

	st := getContestState(t, f.invoker(rando))
	require.EqualValues(t, 3, st.Phase)
	require.EqualValues(t, 2, st.Winner)
	require.EqualValues(t, 1450, st.PooledValue)

	// Nobody staked on the winner, so there is nothing to split: the pooled
	// value goes back to the contributors instead.
	require.EqualValues(t, 0, st.CreatorShare)
	require.EqualValues(t, 0, st.StakerShare)
	require.EqualValues(t, 100, testInt(t, f.invoker(rando), "pendingRefund", votersA[0].ScriptHash()))
	require.EqualValues(t, 450, testInt(t, f.invoker(rando), "pendingRefund", votersB[0].ScriptHash()))
	require.EqualValues(t, 50, testInt(t, f.invoker(rando), "pendingRefund", stakerL.ScriptHash()))

	f.invoker(stakerL).InvokeFail(t, "nothing to claim", "claimStakerReward", corrL)
	f.invoker(f.creator).InvokeFail(t, "nothing to claim", "claimCreatorReward")

	// The prize still goes to the winner, and only to the winner.
	f.invoker(accA).InvokeFail(t, "owner witness check failed", "claimPrize")
	f.invoker(accB).Invoke(t, stackitem.Null{}, "claimPrize")
	require.EqualValues(t, f.prize, creditBalance(t, f.custodian, accB.ScriptHash()))
	f.invoker(accB).InvokeFail(t, "already claimed", "claimPrize")

	// Refunds are pull-based and bound to the account's witness.
	f.invoker(votersA[1]).InvokeFail(t, "owner witness check failed",
		"withdrawRefund", votersA[0].ScriptHash())

	for _, v := range votersA {
		f.invoker(v).Invoke(t, stackitem.Null{}, "withdrawRefund", v.ScriptHash())
		require.EqualValues(t, 100, creditBalance(t, f.custodian, v.ScriptHash()))
	}
	for _, v := range votersB {
		f.invoker(v).Invoke(t, stackitem.Null{}, "withdrawRefund", v.ScriptHash())
		require.EqualValues(t, 450, creditBalance(t, f.custodian, v.ScriptHash()))
	}
	f.invoker(stakerL).Invoke(t, stackitem.Null{}, "withdrawRefund", stakerL.ScriptHash())
	require.EqualValues(t, 50, creditBalance(t, f.custodian, stakerL.ScriptHash()))

	f.invoker(stakerL).InvokeFail(t, "no pending refund", "withdrawRefund", stakerL.ScriptHash())

	// Every credit has left the escrow.
	require.EqualValues(t, 0, creditBalance(t, f.custodian, f.hash))
}

// TestContestResolvePayouts covers the 20/80 split of the pooled value and
// the pro-rata staker payouts with a rounding remainder retained on the
// escrow account.
func TestContestResolvePayouts(t *testing.T) {
	f := newContestFixture(t, "payouts-check", defaultContestParams())

	accA := f.e.NewAccount(t)
	accB := f.e.NewAccount(t)
	f.submit(t, accA, 1, "neofs://entryA")
	f.submit(t, accB, 2, "neofs://entryB")

	voter := f.e.NewAccount(t)
	f.vote(t, voter, 2, 900)

	staker1 := f.e.NewAccount(t)
	staker2 := f.e.NewAccount(t)
	staker3 := f.e.NewAccount(t)
	corrA := newCorrelationID()
	corrB := newCorrelationID()
	corrC := newCorrelationID()
	f.stake(t, staker1, 2, corrA, 30)
	f.stake(t, staker2, 2, corrB, 71)
	f.stake(t, staker3, 1, corrC, 50)

	warpTime(t, f.e, f.resolutionDeadline)

	rando := f.e.NewAccount(t)
	f.invoker(rando).Invoke(t, stackitem.Null{}, "resolve")

	// Pooled value is 900+30+71+50=1051: 20% to the creator, the rest split
	// between the winning stakes of 30 and 71.
	st := getContestState(t, f.invoker(rando))
	require.EqualValues(t, 3, st.Phase)
	require.EqualValues(t, 2, st.Winner)
	require.EqualValues(t, 1051, st.PooledValue)
	require.EqualValues(t, 210, st.CreatorShare)
	require.EqualValues(t, 841, st.StakerShare)

	f.invoker(rando).InvokeFail(t, "invalid contest phase", "resolve")

	require.EqualValues(t, 249, testInt(t, f.invoker(rando), "stakerRewardOf", corrA))
	require.EqualValues(t, 591, testInt(t, f.invoker(rando), "stakerRewardOf", corrB))
	require.EqualValues(t, 0, testInt(t, f.invoker(rando), "stakerRewardOf", corrC))

	f.invoker(staker1).InvokeFail(t, "owner witness check failed", "claimStakerReward", corrB)

	f.invoker(staker1).Invoke(t, stackitem.Null{}, "claimStakerReward", corrA)
	require.EqualValues(t, 249, creditBalance(t, f.custodian, staker1.ScriptHash()))
	f.invoker(staker1).InvokeFail(t, "already claimed", "claimStakerReward", corrA)
	require.EqualValues(t, 0, testInt(t, f.invoker(rando), "stakerRewardOf", corrA))

	// A stake on a losing submission earns nothing and is not refunded.
	f.invoker(staker3).InvokeFail(t, "nothing to claim", "claimStakerReward", corrC)
	require.EqualValues(t, 0, testInt(t, f.invoker(rando), "pendingRefund", staker3.ScriptHash()))

	f.invoker(accA).InvokeFail(t, "creator witness check failed", "claimCreatorReward")
	f.invoker(f.creator).Invoke(t, stackitem.Null{}, "claimCreatorReward")
	require.EqualValues(t, 210, creditBalance(t, f.custodian, f.creator.ScriptHash()))
	f.invoker(f.creator).InvokeFail(t, "already claimed", "claimCreatorReward")

	f.invoker(staker2).Invoke(t, stackitem.Null{}, "claimStakerReward", corrB)
	require.EqualValues(t, 591, creditBalance(t, f.custodian, staker2.ScriptHash()))

	f.invoker(accB).Invoke(t, stackitem.Null{}, "claimPrize")
	require.EqualValues(t, f.prize, creditBalance(t, f.custodian, accB.ScriptHash()))

	// Only the integer division remainder stays on the escrow account.
	require.EqualValues(t, 1, creditBalance(t, f.custodian, f.hash))
}

func TestContestResolveFailures(t *testing.T) {
	t.Run("not enough submissions", func(t *testing.T) {
		f := newContestFixture(t, "starved-check", defaultContestParams())

		acc := f.e.NewAccount(t)
		f.submit(t, acc, 1, "neofs://alone")

		rando := f.e.NewAccount(t)
		f.invoker(rando).InvokeFail(t, "deadline has not been reached yet", "resolve")

		warpTime(t, f.e, f.resolutionDeadline)
		f.invoker(rando).Invoke(t, stackitem.Null{}, "resolve")

		st := getContestState(t, f.invoker(rando))
		require.EqualValues(t, 4, st.Phase)
		require.EqualValues(t, 1, st.FailureReason)

		// The prize pool returns to the creator.
		require.EqualValues(t, f.prize, testInt(t, f.invoker(rando), "pendingRefund", f.creator.ScriptHash()))
		f.invoker(f.creator).Invoke(t, stackitem.Null{}, "withdrawRefund", f.creator.ScriptHash())
		require.EqualValues(t, f.prize, creditBalance(t, f.custodian, f.creator.ScriptHash()))

		f.invoker(rando).InvokeFail(t, "invalid contest phase", "resolve")

		vu := f.validUntil(t)
		corr := newCorrelationID()
		sig := f.signSubmit(t, rando.ScriptHash(), corr, "neofs://late", vu)
		f.invoker(rando).InvokeFail(t, "invalid contest phase",
			"submit", rando.ScriptHash(), corr, "neofs://late", "text/markdown", vu, sig)
	})

	t.Run("no valid winner", func(t *testing.T) {
		f := newContestFixture(t, "unbacked-check", defaultContestParams())

		accA := f.e.NewAccount(t)
		accB := f.e.NewAccount(t)
		f.submit(t, accA, 1, "neofs://entryA")
		f.submit(t, accB, 2, "neofs://entryB")

		warpTime(t, f.e, f.resolutionDeadline)

		rando := f.e.NewAccount(t)
		f.invoker(rando).Invoke(t, stackitem.Null{}, "resolve")

		st := getContestState(t, f.invoker(rando))
		require.EqualValues(t, 4, st.Phase)
		require.EqualValues(t, 2, st.FailureReason)
		require.EqualValues(t, f.prize, testInt(t, f.invoker(rando), "pendingRefund", f.creator.ScriptHash()))
	})

	t.Run("failed by creator", func(t *testing.T) {
		p := defaultContestParams()
		p.minEntries = 3
		f := newContestFixture(t, "creator-fail-check", p)

		acc := f.e.NewAccount(t)
		f.submit(t, acc, 1, "neofs://alone")

		f.invoker(f.creator).InvokeFail(t, "deadline has not been reached yet", "failContest")

		warpTime(t, f.e, f.submissionDeadline)

		f.invoker(acc).InvokeFail(t, "creator witness check failed", "failContest")
		f.invoker(f.creator).Invoke(t, stackitem.Null{}, "failContest")

		st := getContestState(t, f.invoker(acc))
		require.EqualValues(t, 4, st.Phase)
		require.EqualValues(t, 1, st.FailureReason)

		f.invoker(acc).InvokeFail(t, "invalid contest phase", "resolve")
	})
}

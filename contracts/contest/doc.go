/*
Package contest implements Contest contract deployed per contest by the
Registry contract.

Contest contract escrows the prize pool and all participant deposits of a
single contest and drives its lifecycle: SUBMISSION, then VOTING, then exactly
one of ENDED or FAILED. Every state-changing participant action (submission,
vote, stake) requires two endorsements: the witness of the acting account and
a signature of the off-chain contest authority over the canonical encoding of
the action. The authority signature is single-use; its digest is recorded on
first presentation and any replay is rejected, including replays against
other contests (the payload starts with the contest's own address).

Phase transitions are recorded, not derived from the clock. Deadlines gate
individual operations, but the stored phase moves only when a submission
reaches the configured minimum, or when Resolve or FailContest runs; until
then the Phase and State views keep reporting the last recorded phase even
past the resolution deadline. Resolve is permissionless exactly so that
anyone can record the terminal phase once it is due.

Funds are held by an external NEP-17 custodian token contract and move only
through it. On successful resolution the whole prize pool belongs to the
winning submitter and the pooled vote and stake value is split 20/80 between
the creator and the stakers of the winning submission, pro-rata to their
stakes. Integer division remainders of pro-rata payouts stay on the escrow
account. On failure, or when the winning submission has no stakes to pay, the
affected funds are credited to a per-account pending refund ledger and are
withdrawn by their owners individually; no payout loop pushes transfers to
contributors.

# Contract notifications

PhaseChanged notification. Produced on every phase transition.

	PhaseChanged:
	  - name: phase
	    type: Integer

SubmissionAccepted notification. Produced on every registered submission.

	SubmissionAccepted:
	  - name: id
	    type: Integer
	  - name: submitter
	    type: Hash160
	  - name: correlationId
	    type: ByteArray

VoteAccepted notification. Produced on every recorded vote.

	VoteAccepted:
	  - name: id
	    type: Integer
	  - name: voter
	    type: Hash160
	  - name: amount
	    type: Integer

StakeAccepted notification. Produced on every recorded stake.

	StakeAccepted:
	  - name: id
	    type: Integer
	  - name: correlationId
	    type: ByteArray
	  - name: staker
	    type: Hash160
	  - name: amount
	    type: Integer

WinnerDetermined notification. Produced once, on successful resolution.

	WinnerDetermined:
	  - name: id
	    type: Integer
	  - name: submitter
	    type: Hash160

ContestFailed notification. Produced once, on the terminal FAILED transition,
with a reason code from the contestconst package.

	ContestFailed:
	  - name: reason
	    type: Integer

StakerShareRefunded notification. Produced when the winning submission has no
stakes and the pooled value is sent to the refund ledger instead of being
split.

	StakerShareRefunded:
	  - name: amount
	    type: Integer

PrizeClaimed, CreatorRewardClaimed, StakerRewardClaimed, RefundCredited and
RefundWithdrawn notifications. Produced once per corresponding payout or
refund ledger movement.

	PrizeClaimed:
	  - name: submitter
	    type: Hash160
	  - name: amount
	    type: Integer

	CreatorRewardClaimed:
	  - name: creator
	    type: Hash160
	  - name: amount
	    type: Integer

	StakerRewardClaimed:
	  - name: correlationId
	    type: ByteArray
	  - name: staker
	    type: Hash160
	  - name: amount
	    type: Integer

	RefundCredited:
	  - name: account
	    type: Hash160
	  - name: amount
	    type: Integer

	RefundWithdrawn:
	  - name: account
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package contest

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'c' -> std.Serialize(ContestConfig)
   immutable contest configuration provided by the Registry at deployment
 - 'f' -> int
   current phase
 - 'n' -> int
   submission count, also the last issued creation index
 - 't' -> int
   total pooled vote and stake value
 - 'w' -> int
   winning submission index, set on successful resolution
 - 'e' -> int
   failure reason code, set on the FAILED transition
 - 'q', 'm' -> []byte
   prize claimed / creator reward claimed markers
 - 'y', 'h' -> int
   creator and staker shares of the pooled value, set on successful resolution
 - 'l' -> []byte
   reentrancy lock marker held for the duration of a mutating call
 - s<id> -> std.Serialize(Submission)
   submission records by creation index
 - S<submitter> -> int
   submitter uniqueness index
 - C<sha256(correlationId)> -> int
   correlation id uniqueness index
 - v<id><voter> -> std.Serialize(VoteRecord)
   vote ledger
 - z<id><sha256(correlationId)> -> std.Serialize(StakeRecord)
   stake ledger
 - g<sha256(correlationId)> -> int
   total stake of a correlation id across all submissions
 - u<sha256(signature)> -> []byte
   write-once used-signature set
 - b<account> -> int
   pending refund balances, pull-withdrawal ledger

# Auditability
No record is ever deleted (except the withdrawn pending balances and the
transient lock marker); terminal transitions only flip flags and credit
ledgers, so the full contest history stays reconstructible from storage and
notifications.
*/

// Package contest provides client-side data structures and helpers for the
// Contest contract. The AuthPayload encoding here is byte-compatible with the
// one the contract verifies, so authority services can produce signatures with
// nothing but this package and a private key.
package contest

import (
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Phase enumerates contest lifecycle phases.
const (
	PhaseSubmission int64 = 1
	PhaseVoting     int64 = 2
	PhaseEnded      int64 = 3
	PhaseFailed     int64 = 4
)

// Contest failure reasons.
const (
	ReasonNotEnoughSubmissions int64 = 1
	ReasonNoValidWinner        int64 = 2
)

// Action tags of authorized contest operations.
const (
	ActionSubmit int64 = 1
	ActionVote   int64 = 2
	ActionStake  int64 = 3
)

// AuthPayload is a single contest action endorsed by the authority. Fields
// not applicable to an action kind are left at their zero values: Submit
// carries the content reference in Detail and no SubmissionID or Amount, Vote
// carries no CorrelationID or Detail, Stake carries no Detail.
type AuthPayload struct {
	Contest       util.Uint160
	Action        int64
	Caller        util.Uint160
	SubmissionID  int64
	CorrelationID []byte
	Amount        int64
	Detail        []byte
	ValidUntil    int64
}

// Bytes returns the canonical payload encoding checked by the contract.
func (p AuthPayload) Bytes() ([]byte, error) {
	return stackitem.Serialize(stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(p.Contest.BytesBE()),
		stackitem.Make(p.Action),
		stackitem.NewByteArray(p.Caller.BytesBE()),
		stackitem.Make(p.SubmissionID),
		stackitem.NewByteArray(p.CorrelationID),
		stackitem.Make(p.Amount),
		stackitem.NewByteArray(p.Detail),
		stackitem.Make(p.ValidUntil),
	}))
}

// Sign returns the authority signature over the canonical payload encoding.
func (p AuthPayload) Sign(key *keys.PrivateKey) ([]byte, error) {
	data, err := p.Bytes()
	if err != nil {
		return nil, err
	}
	return key.Sign(data), nil
}

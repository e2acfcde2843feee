package tests

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"path"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"

	rpccontest "github.com/contesthub/contest-contracts/rpc/contest"
)

const (
	custodianPath = "../contracts/custodian"
	registryPath  = "../contracts/registry"
	contestPath   = "../contracts/contest"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

func newCorrelationID() []byte {
	return []byte(uuid.New().String())
}

// blockTime returns the timestamp of the last persisted block, in
// milliseconds. Transactions of the next block are executed after it.
func blockTime(t *testing.T, e *neotest.Executor) int64 {
	return int64(e.TopBlock(t).Timestamp)
}

// warpTime persists an empty block with the specified timestamp, so that the
// following transactions are executed after it.
func warpTime(t *testing.T, e *neotest.Executor, timestamp int64) {
	b := e.NewUnsignedBlock(t)
	b.Timestamp = uint64(timestamp)
	e.SignBlock(b)
	require.NoError(t, e.Chain.AddBlock(b))
}

func deployCustodianContract(t *testing.T, e *neotest.Executor) *neotest.ContractInvoker {
	c := neotest.CompileFile(t, e.Validator.ScriptHash(), custodianPath, path.Join(custodianPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return e.CommitteeInvoker(c.Hash)
}

// contestContract compiles the contest contract and, with a non-empty name,
// rebrands it so that several instances can live on a single test chain.
func contestContract(t *testing.T, e *neotest.Executor, name string) *neotest.Contract {
	c := neotest.CompileFile(t, e.Validator.ScriptHash(), contestPath, path.Join(contestPath, "config.yml"))
	if name == "" {
		return c
	}

	m := *c.Manifest
	m.Name = name
	return &neotest.Contract{
		Hash:     state.CreateContractHash(e.Validator.ScriptHash(), c.NEF.Checksum, name),
		NEF:      c.NEF,
		Manifest: &m,
	}
}

// contestManifestTemplate marshals the contest manifest and splits it around
// the contract name, producing the template halves the registry is
// initialized with.
func contestManifestTemplate(t *testing.T, c *neotest.Contract) ([]byte, []byte) {
	const placeholder = "@name@"

	m := *c.Manifest
	m.Name = placeholder
	data, err := json.Marshal(&m)
	require.NoError(t, err)

	parts := bytes.SplitN(data, []byte(placeholder), 2)
	require.Len(t, parts, 2)
	return parts[0], parts[1]
}

func mintCredits(t *testing.T, custodian *neotest.ContractInvoker, to util.Uint160, amount int64) {
	custodian.Invoke(t, stackitem.Null{}, "mint", to, amount, []byte{})
}

func creditBalance(t *testing.T, custodian *neotest.ContractInvoker, acc util.Uint160) int64 {
	s, err := custodian.TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	return s.Pop().BigInt().Int64()
}

func testInt(t *testing.T, inv *neotest.ContractInvoker, method string, args ...interface{}) int64 {
	s, err := inv.TestInvoke(t, method, args...)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	return s.Pop().BigInt().Int64()
}

// contestState mirrors the numeric part of the contest State structure.
type contestState struct {
	Phase           int64
	SubmissionCount int64
	PooledValue     int64
	Winner          int64
	FailureReason   int64
	CreatorShare    int64
	StakerShare     int64
}

func getContestState(t *testing.T, inv *neotest.ContractInvoker) contestState {
	s, err := inv.TestInvoke(t, "state")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	fields, ok := s.Pop().Value().([]stackitem.Item)
	require.True(t, ok)
	require.Equal(t, 9, len(fields))

	num := func(i int) int64 {
		v, err := fields[i].TryInteger()
		require.NoError(t, err)
		return v.Int64()
	}
	return contestState{
		Phase:           num(0),
		SubmissionCount: num(1),
		PooledValue:     num(2),
		Winner:          num(3),
		FailureReason:   num(4),
		CreatorShare:    num(5),
		StakerShare:     num(6),
	}
}

// contestFixture wires a deployed contest instance together with its
// custodian and authority key and keeps the signing boilerplate out of the
// tests.
type contestFixture struct {
	e         *neotest.Executor
	custodian *neotest.ContractInvoker
	authority *keys.PrivateKey
	creator   neotest.Signer
	hash      util.Uint160

	prize              int64
	submissionDeadline int64
	resolutionDeadline int64
}

type contestParams struct {
	prize      int64
	minVote    int64
	maxVote    int64
	minEntries int64

	// Deadline offsets from the current block time, in milliseconds.
	submissionOffset int64
	resolutionOffset int64
}

func defaultContestParams() contestParams {
	return contestParams{
		prize:            1000,
		minVote:          1,
		maxVote:          1000,
		minEntries:       2,
		submissionOffset: time.Hour.Milliseconds(),
		resolutionOffset: 2 * time.Hour.Milliseconds(),
	}
}

// newContestFixture deploys a custodian and a contest instance under the
// specified name and funds the contest escrow with the prize pool.
func newContestFixture(t *testing.T, name string, p contestParams) *contestFixture {
	e := newExecutor(t)
	custodian := deployCustodianContract(t, e)

	authority, err := keys.NewPrivateKey()
	require.NoError(t, err)

	creator := e.NewAccount(t)
	now := blockTime(t, e)

	f := &contestFixture{
		e:                  e,
		custodian:          custodian,
		authority:          authority,
		creator:            creator,
		prize:              p.prize,
		submissionDeadline: now + p.submissionOffset,
		resolutionDeadline: now + p.resolutionOffset,
	}

	c := contestContract(t, e, name)
	e.DeployContract(t, c, []interface{}{
		custodian.Hash, creator.ScriptHash(), authority.PublicKey().Bytes(),
		p.prize, p.minVote, p.maxVote, p.minEntries,
		f.submissionDeadline, f.resolutionDeadline,
	})
	f.hash = c.Hash

	mintCredits(t, custodian, c.Hash, p.prize)
	return f
}

func (f *contestFixture) invoker(acc neotest.Signer) *neotest.ContractInvoker {
	return f.e.NewInvoker(f.hash, acc)
}

func (f *contestFixture) validUntil(t *testing.T) int64 {
	return blockTime(t, f.e) + time.Hour.Milliseconds()
}

func (f *contestFixture) signSubmit(t *testing.T, caller util.Uint160, corr []byte, url string, validUntil int64) []byte {
	sig, err := rpccontest.AuthPayload{
		Contest:       f.hash,
		Action:        rpccontest.ActionSubmit,
		Caller:        caller,
		CorrelationID: corr,
		Detail:        []byte(url),
		ValidUntil:    validUntil,
	}.Sign(f.authority)
	require.NoError(t, err)
	return sig
}

func (f *contestFixture) signVote(t *testing.T, caller util.Uint160, submissionID, amount, validUntil int64) []byte {
	sig, err := rpccontest.AuthPayload{
		Contest:      f.hash,
		Action:       rpccontest.ActionVote,
		Caller:       caller,
		SubmissionID: submissionID,
		Amount:       amount,
		ValidUntil:   validUntil,
	}.Sign(f.authority)
	require.NoError(t, err)
	return sig
}

func (f *contestFixture) signStake(t *testing.T, caller util.Uint160, submissionID int64, corr []byte, amount, validUntil int64) []byte {
	sig, err := rpccontest.AuthPayload{
		Contest:       f.hash,
		Action:        rpccontest.ActionStake,
		Caller:        caller,
		SubmissionID:  submissionID,
		CorrelationID: corr,
		Amount:        amount,
		ValidUntil:    validUntil,
	}.Sign(f.authority)
	require.NoError(t, err)
	return sig
}

// submit registers a contest entry with a fresh authority endorsement and
// returns the used correlation id.
func (f *contestFixture) submit(t *testing.T, acc neotest.Signer, id int64, url string) []byte {
	corr := newCorrelationID()
	vu := f.validUntil(t)
	sig := f.signSubmit(t, acc.ScriptHash(), corr, url, vu)
	f.invoker(acc).Invoke(t, id, "submit", acc.ScriptHash(), corr, url, "text/markdown", vu, sig)
	return corr
}

// vote casts an endorsed vote, minting the voter's credits beforehand.
func (f *contestFixture) vote(t *testing.T, acc neotest.Signer, submissionID, amount int64) {
	mintCredits(t, f.custodian, acc.ScriptHash(), amount)
	vu := f.validUntil(t)
	sig := f.signVote(t, acc.ScriptHash(), submissionID, amount, vu)
	f.invoker(acc).Invoke(t, stackitem.Null{}, "vote", submissionID, acc.ScriptHash(), amount, vu, sig)
}

// stake places an endorsed stake, minting the staker's credits beforehand.
func (f *contestFixture) stake(t *testing.T, acc neotest.Signer, submissionID int64, corr []byte, amount int64) {
	mintCredits(t, f.custodian, acc.ScriptHash(), amount)
	vu := f.validUntil(t)
	sig := f.signStake(t, acc.ScriptHash(), submissionID, corr, amount, vu)
	f.invoker(acc).Invoke(t, stackitem.Null{}, "stake", submissionID, acc.ScriptHash(), corr, amount, vu, sig)
}

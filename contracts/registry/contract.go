package registry

import (
	"github.com/contesthub/contest-contracts/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	custodianKey    = 'c'
	platformKey     = 'p'
	feeKey          = 'f'
	nefHashKey      = 'h'
	manifestHeadKey = 'a'
	manifestTailKey = 'b'
	countKey        = 'n'

	contestPrefix = 'r'
)

// ErrUntrustedNEF is returned on a contest creation attempt with contract
// code different from the trusted one.
const ErrUntrustedNEF = "untrusted contest NEF"

// ErrInvalidName is returned on a contest creation attempt with an empty
// contract name or one that cannot be spliced into the manifest template
// verbatim.
const ErrInvalidName = "invalid contest name"

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]any)
	custodian := args[0].(interop.Hash160)
	platform := args[1].(interop.Hash160)
	fee := args[2].(int)
	nefHash := args[3].([]byte)
	manifestHead := args[4].([]byte)
	manifestTail := args[5].([]byte)

	if len(custodian) != interop.Hash160Len || len(platform) != interop.Hash160Len {
		panic("invalid account parameters")
	}
	if fee < 0 {
		panic("negative platform fee")
	}
	if len(nefHash) != interop.Hash256Len {
		panic("invalid contest NEF hash")
	}
	if len(manifestHead) == 0 || len(manifestTail) == 0 {
		panic("invalid contest manifest template")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, custodianKey, custodian)
	storage.Put(ctx, platformKey, platform)
	storage.Put(ctx, feeKey, fee)
	storage.Put(ctx, nefHashKey, nefHash)
	storage.Put(ctx, manifestHeadKey, manifestHead)
	storage.Put(ctx, manifestTailKey, manifestTail)

	runtime.Log("registry contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("registry contract updated")
}

// NewContest validates contest parameters, collects the platform fee from the
// creator, deploys a new Contest contract instance seeded with the
// configuration and funds its escrow with the prize pool. Durations are in
// milliseconds and are converted to absolute deadlines at the current block
// time. It can be invoked only with the creator's witness.
//
// nef must be byte-identical to the trusted Contest contract NEF registered
// at deployment. The manifest is not taken from the creator: it is assembled
// from the trusted template registered at deployment with only the
// contest-unique contract name spliced in, so a deployed contest always runs
// the audited code under the audited manifest. Deployment fails on a name the
// registry has already deployed. Returns the address of the new instance.
//
// It produces ContestCreated notification.
func NewContest(nef []byte, name string, creator interop.Hash160, authorityKey interop.PublicKey, prize, minVote, maxVote, minEntries, submissionDuration, totalDuration int) interop.Hash160 {
	ctx := storage.GetContext()

	common.ValidateContestParams(prize, minVote, maxVote, minEntries, submissionDuration, totalDuration)
	if len(creator) != interop.Hash160Len {
		panic("invalid creator")
	}
	if len(authorityKey) != interop.PublicKeyCompressedLen {
		panic("invalid authority key")
	}

	trusted := storage.Get(ctx, nefHashKey).([]byte)
	if !common.BytesEqual([]byte(crypto.Sha256(nef)), trusted) {
		panic(ErrUntrustedNEF)
	}
	manifest := makeManifest(ctx, name)

	common.CheckCreatorWitness(creator)

	custodian := storage.Get(ctx, custodianKey).(interop.Hash160)
	fee := common.GetIntOrZero(ctx, feeKey)
	if fee > 0 {
		platform := storage.Get(ctx, platformKey).(interop.Hash160)
		common.CustodianTransfer(custodian, creator, platform, fee, common.PlatformFeeDetails(creator))
	}

	now := runtime.GetTime()
	deployed := management.DeployWithData(nef, manifest, []any{
		custodian,
		creator,
		authorityKey,
		prize,
		minVote,
		maxVote,
		minEntries,
		now + submissionDuration,
		now + totalDuration,
	})

	common.CustodianTransfer(custodian, creator, deployed.Hash, prize, common.EscrowDepositDetails(0))

	key := append([]byte{contestPrefix}, creator...)
	key = append(key, deployed.Hash...)
	storage.Put(ctx, key, deployed.Hash)
	storage.Put(ctx, countKey, common.GetIntOrZero(ctx, countKey)+1)

	runtime.Log("deployed new contest")
	runtime.Notify("ContestCreated", deployed.Hash, creator)

	return deployed.Hash
}

// makeManifest splices the contest name into the trusted manifest template.
// The name goes into a JSON string literal verbatim, so characters that need
// escaping there are rejected.
func makeManifest(ctx storage.Context, name string) []byte {
	if len(name) == 0 {
		panic(ErrInvalidName)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 0x20 || c == '"' || c == '\\' {
			panic(ErrInvalidName)
		}
	}

	manifest := storage.Get(ctx, manifestHeadKey).([]byte)
	manifest = append(manifest, []byte(name)...)
	return append(manifest, storage.Get(ctx, manifestTailKey).([]byte)...)
}

// ContestsOf iterates over addresses of all contests deployed for the
// specified creator. If creator is empty, it iterates over all contests.
func ContestsOf(creator interop.Hash160) iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	key := []byte{contestPrefix}
	if len(creator) != 0 {
		key = append(key, creator...)
	}
	return storage.Find(ctx, key, storage.ValuesOnly)
}

// Count returns the number of contests deployed through the registry.
func Count() int {
	return common.GetIntOrZero(storage.GetReadOnlyContext(), countKey)
}

// PlatformFee returns the fee collected from the creator on every contest
// creation.
func PlatformFee() int {
	return common.GetIntOrZero(storage.GetReadOnlyContext(), feeKey)
}

// SetPlatformFee changes the contest creation fee. It can be invoked only by
// committee.
//
// It produces FeeChanged notification.
func SetPlatformFee(fee int) {
	if fee < 0 {
		panic("negative platform fee")
	}

	common.CheckWitness(common.CommitteeAddress())

	storage.Put(storage.GetContext(), feeKey, fee)
	runtime.Notify("FeeChanged", fee)
}

// CustodianAddress returns the address of the custodian token contract all
// deployed contests settle through.
func CustodianAddress() interop.Hash160 {
	return storage.Get(storage.GetReadOnlyContext(), custodianKey).(interop.Hash160)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

package custodian

import (
	"github.com/contesthub/contest-contracts/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Token holds all token info.
type Token struct {
	// Ticker symbol
	Symbol string
	// Amount of decimals
	Decimals int
	// Storage key for circulation value
	CirculationKey string
}

const (
	symbol      = "CRED"
	decimals    = 8
	circulation = "TokenCirculation"
	accPrefix   = 'a'
)

var token Token

func init() {
	token = Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

// nolint:unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	runtime.Log("custodian contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("custodian contract updated")
}

// Symbol is a NEP-17 standard method that returns the custodian token symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of custodian
// balances.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the total amount of
// minted credits.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns the balance of the
// specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return token.balanceOf(ctx, account)
}

// Transfer is a NEP-17 standard method that transfers credits from one
// account to another. It can be invoked by the account owner or by a
// contract moving funds out of its own account; the latter is what lets a
// contest escrow release payouts and refunds it holds.
//
// It produces Transfer and TransferX notifications. TransferX carries the
// settlement details supplied by the calling contract.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	return token.transfer(ctx, from, to, amount, false, data)
}

// Mint creates the specified amount of credits on a user account. It can be
// invoked only by committee, after processing a matching main chain deposit.
//
// It produces Transfer and TransferX notifications.
func Mint(to interop.Hash160, amount int, details []byte) {
	ctx := storage.GetContext()

	common.CheckWitness(common.CommitteeAddress())

	ok := token.transfer(ctx, nil, to, amount, true, details)
	if !ok {
		panic("can't mint credits")
	}

	storage.Put(ctx, token.CirculationKey, token.getSupply(ctx)+amount)
	runtime.Log("credits were minted")
}

// Burn destroys the specified amount of credits on a user account. It can be
// invoked only by committee, when credits are redeemed back to the main
// chain.
//
// It produces Transfer and TransferX notifications.
func Burn(from interop.Hash160, amount int, details []byte) {
	ctx := storage.GetContext()

	common.CheckWitness(common.CommitteeAddress())

	ok := token.transfer(ctx, from, nil, amount, true, details)
	if !ok {
		panic("can't burn credits")
	}

	supply := token.getSupply(ctx)
	if supply < amount {
		panic("negative supply after burn")
	}

	storage.Put(ctx, token.CirculationKey, supply-amount)
	runtime.Log("credits were burned")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// getSupply gets the token totalSupply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	return common.GetIntOrZero(ctx, t.CirculationKey)
}

func (t Token) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	return common.GetIntOrZero(ctx, append([]byte{accPrefix}, holder...))
}

func (t Token) transfer(ctx storage.Context, from, to interop.Hash160, amount int, system bool, details any) bool {
	if amount < 0 {
		panic("negative amount")
	}

	balanceFrom, ok := t.canTransfer(ctx, from, to, amount, system)
	if !ok {
		return false
	}

	if len(from) == interop.Hash160Len {
		fromKey := append([]byte{accPrefix}, from...)
		if balanceFrom == amount {
			storage.Delete(ctx, fromKey)
		} else {
			storage.Put(ctx, fromKey, balanceFrom-amount)
		}
	}

	if len(to) == interop.Hash160Len {
		toKey := append([]byte{accPrefix}, to...)
		storage.Put(ctx, toKey, t.balanceOf(ctx, to)+amount)
	}

	runtime.Notify("Transfer", from, to, amount)
	runtime.Notify("TransferX", from, to, amount, details)

	return true
}

// canTransfer returns the sender's balance when the transfer is authorized
// and covered by it.
func (t Token) canTransfer(ctx storage.Context, from, to interop.Hash160, amount int, system bool) (int, bool) {
	if !system {
		if len(to) != interop.Hash160Len || !isUsableAddress(from) {
			runtime.Log("bad script hashes")
			return 0, false
		}
	} else if len(from) == 0 {
		return 0, true
	}

	balanceFrom := t.balanceOf(ctx, from)
	if balanceFrom < amount {
		runtime.Log("insufficient funds")
		return 0, false
	}

	return balanceFrom, true
}

// isUsableAddress checks if the sender either witnessed the transaction or is
// the calling contract spending its own funds.
func isUsableAddress(addr interop.Hash160) bool {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return true
		}

		callingScriptHash := runtime.GetCallingScriptHash()
		if callingScriptHash.Equals(addr) {
			return true
		}
	}

	return false
}

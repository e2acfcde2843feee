/*
Package hostilecustodian implements a custodian stub for Contest contract
tests. Its transfer reports success without moving anything, but when armed it
first re-invokes a method of the calling contract and records how the attempt
ended. Exceptions thrown by the callee are caught, so the outer call is free
to complete whatever the nested invocation did.
*/
package hostilecustodian

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	methodKey  = 'm'
	outcomeKey = 'o'
)

// Arm stores the method to re-invoke on the transfer's caller. An empty
// method disarms the stub.
func Arm(method string) {
	ctx := storage.GetContext()
	if len(method) == 0 {
		storage.Delete(ctx, methodKey)
		return
	}
	storage.Put(ctx, methodKey, method)
}

// Outcome returns the message recovered from the last nested invocation, or
// "completed" if it went through.
func Outcome() []byte {
	data := storage.Get(storage.GetReadOnlyContext(), outcomeKey)
	if data == nil {
		return nil
	}
	return data.([]byte)
}

// Transfer always succeeds. When the stub is armed, it calls back into the
// calling contract before returning.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	raw := storage.Get(ctx, methodKey)
	if raw != nil {
		callBack(ctx, runtime.GetCallingScriptHash(), string(raw.([]byte)))
	}
	return true
}

func callBack(ctx storage.Context, target interop.Hash160, method string) {
	defer func() {
		if r := recover(); r != nil {
			storage.Put(ctx, outcomeKey, r)
		}
	}()

	contract.Call(target, method, contract.All)
	storage.Put(ctx, outcomeKey, "completed")
}

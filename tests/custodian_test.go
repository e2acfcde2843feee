package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestCustodianToken(t *testing.T) {
	e := newExecutor(t)
	cust := deployCustodianContract(t, e)

	cust.Invoke(t, "CRED", "symbol")
	cust.Invoke(t, 8, "decimals")
	require.EqualValues(t, 0, testInt(t, cust, "totalSupply"))

	acc1 := e.NewAccount(t)
	acc2 := e.NewAccount(t)

	// Credits enter circulation only through the committee.
	e.NewInvoker(cust.Hash, acc1).InvokeFail(t, "witness check failed",
		"mint", acc1.ScriptHash(), 100, []byte{})

	mintCredits(t, cust, acc1.ScriptHash(), 500)
	require.EqualValues(t, 500, testInt(t, cust, "totalSupply"))
	require.EqualValues(t, 500, creditBalance(t, cust, acc1.ScriptHash()))

	inv1 := e.NewInvoker(cust.Hash, acc1)

	// A transfer needs the sender's witness.
	e.NewInvoker(cust.Hash, acc2).Invoke(t, false, "transfer",
		acc1.ScriptHash(), acc2.ScriptHash(), 100, nil)

	inv1.Invoke(t, true, "transfer", acc1.ScriptHash(), acc2.ScriptHash(), 100, nil)
	require.EqualValues(t, 400, creditBalance(t, cust, acc1.ScriptHash()))
	require.EqualValues(t, 100, creditBalance(t, cust, acc2.ScriptHash()))

	// Transfers are not loans.
	inv1.Invoke(t, false, "transfer", acc1.ScriptHash(), acc2.ScriptHash(), 1000, nil)
	inv1.InvokeFail(t, "negative amount", "transfer", acc1.ScriptHash(), acc2.ScriptHash(), -1, nil)

	inv1.Invoke(t, true, "transfer", acc1.ScriptHash(), acc2.ScriptHash(), 400, nil)
	require.EqualValues(t, 0, creditBalance(t, cust, acc1.ScriptHash()))
	require.EqualValues(t, 500, creditBalance(t, cust, acc2.ScriptHash()))

	cust.Invoke(t, stackitem.Null{}, "burn", acc2.ScriptHash(), 200, []byte{})
	require.EqualValues(t, 300, testInt(t, cust, "totalSupply"))
	require.EqualValues(t, 300, creditBalance(t, cust, acc2.ScriptHash()))

	cust.InvokeFail(t, "can't burn credits", "burn", acc2.ScriptHash(), 1000, []byte{})
}

func TestCustodianVersion(t *testing.T) {
	e := newExecutor(t)
	cust := deployCustodianContract(t, e)
	require.EqualValues(t, 1_000, testInt(t, cust, "version"))
}

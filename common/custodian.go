package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
)

var (
	platformFeePrefix   = []byte{0x01}
	escrowDepositPrefix = []byte{0x02}
	prizePrefix         = []byte{0x03}
	creatorRewardPrefix = []byte{0x04}
	stakerRewardPrefix  = []byte{0x05}
	refundPrefix        = []byte{0x06}
)

// CustodianTransfer moves amount between two accounts through the custodian
// token contract. The transfer is atomic with the calling transaction; the
// whole call is aborted if the custodian declines it.
func CustodianTransfer(custodian interop.Hash160, from, to interop.Hash160, amount int, details []byte) {
	ok := contract.Call(custodian, "transfer", contract.All, from, to, amount, details).(bool)
	if !ok {
		panic("custodian transfer failed")
	}
}

func PlatformFeeDetails(contest []byte) []byte {
	return append(platformFeePrefix, contest...)
}

func EscrowDepositDetails(submissionID int) []byte {
	return append(escrowDepositPrefix, convert.ToBytes(submissionID)...)
}

func PrizeDetails() []byte {
	return prizePrefix
}

func CreatorRewardDetails() []byte {
	return creatorRewardPrefix
}

func StakerRewardDetails(correlationID []byte) []byte {
	return append(stakerRewardPrefix, correlationID...)
}

func RefundDetails() []byte {
	return refundPrefix
}

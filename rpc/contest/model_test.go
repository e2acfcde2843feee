package contest

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestAuthPayloadSign(t *testing.T) {
	key, err := keys.NewPrivateKey()
	require.NoError(t, err)

	p := AuthPayload{
		Contest:      util.Uint160{1, 2, 3},
		Action:       ActionVote,
		Caller:       util.Uint160{4, 5, 6},
		SubmissionID: 7,
		Amount:       100,
		ValidUntil:   1_700_000_000_000,
	}

	data, err := p.Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	sig, err := p.Sign(key)
	require.NoError(t, err)
	require.True(t, key.PublicKey().Verify(sig, hash.Sha256(data).BytesBE()))

	// Every field is bound into the encoding.
	p2 := p
	p2.Amount++
	data2, err := p2.Bytes()
	require.NoError(t, err)
	require.NotEqual(t, data, data2)

	p3 := p
	p3.CorrelationID = []byte("ad08e5e5-d74f-4fc3-a7a1-196e0e33ee05")
	data3, err := p3.Bytes()
	require.NoError(t, err)
	require.NotEqual(t, data, data3)
}

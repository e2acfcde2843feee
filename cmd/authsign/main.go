// Command authsign is the reference authority signer. It endorses a single
// contest action off-chain and prints the signature to pass to the contract
// call, together with the replay digest the contract stores once the
// signature is consumed.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"

	"github.com/contesthub/contest-contracts/rpc/contest"
)

func main() {
	wif := flag.String("wif", "", "WIF of the contest authority key")
	contestAddr := flag.String("contest", "", "Address of the contest contract")
	action := flag.String("action", "", "Action to endorse: submit, vote or stake")
	caller := flag.String("caller", "", "Address of the acting account")
	submissionID := flag.Int64("submission", 0, "Submission index (vote and stake)")
	correlationID := flag.String("corr", "", "Correlation id (submit and stake, new UUID by default)")
	amount := flag.Int64("amount", 0, "Credit amount (vote and stake)")
	contentURL := flag.String("url", "", "Content reference (submit)")
	ttl := flag.Duration("ttl", 15*time.Minute, "Signature validity period")

	flag.Parse()

	switch {
	case *wif == "":
		log.Fatal("missing authority WIF")
	case *contestAddr == "":
		log.Fatal("missing contest address")
	case *caller == "":
		log.Fatal("missing caller address")
	}

	key, err := keys.NewPrivateKeyFromWIF(*wif)
	if err != nil {
		log.Fatal(fmt.Errorf("decode authority WIF: %w", err))
	}

	p := contest.AuthPayload{
		Contest:    parseAddress(*contestAddr),
		Caller:     parseAddress(*caller),
		ValidUntil: time.Now().Add(*ttl).UnixMilli(),
	}

	switch *action {
	case "submit":
		if *contentURL == "" {
			log.Fatal("missing content reference")
		}
		if *correlationID == "" {
			*correlationID = uuid.New().String()
		}
		p.Action = contest.ActionSubmit
		p.CorrelationID = []byte(*correlationID)
		p.Detail = []byte(*contentURL)
	case "vote":
		p.Action = contest.ActionVote
		p.SubmissionID = *submissionID
		p.Amount = *amount
	case "stake":
		if *correlationID == "" {
			log.Fatal("missing correlation id")
		}
		p.Action = contest.ActionStake
		p.SubmissionID = *submissionID
		p.CorrelationID = []byte(*correlationID)
		p.Amount = *amount
	default:
		log.Fatalf("unknown action '%s'", *action)
	}

	sig, err := p.Sign(key)
	if err != nil {
		log.Fatal(fmt.Errorf("sign payload: %w", err))
	}

	digest := sha256.Sum256(sig)

	fmt.Printf("action:        %s\n", *action)
	if len(p.CorrelationID) != 0 {
		fmt.Printf("correlationID: %s\n", p.CorrelationID)
	}
	fmt.Printf("validUntil:    %d\n", p.ValidUntil)
	fmt.Printf("signature:     %s\n", hex.EncodeToString(sig))
	fmt.Printf("replay digest: %s\n", base58.Encode(digest[:]))
}

func parseAddress(s string) util.Uint160 {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h
	}

	h, err = util.Uint160DecodeStringLE(s)
	if err != nil {
		log.Fatal(fmt.Errorf("decode address '%s': %w", s, err))
	}

	return h
}

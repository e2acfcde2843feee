/*
Package custodian implements the reference asset custodian of the contest
platform, a NEP-17 compatible credit token.

The contest engine treats the custodian as an opaque fund mover: deposits flow
in with the payer's witness, payouts and refunds flow out on behalf of the
escrow contract itself. The only non-standard part of this token is exactly
that authorization rule: a transfer is accepted either with the witness of
the sender or when the sender is the contract performing the call, which is
what lets a Contest contract release the funds it escrows without holding any
signing key. Credits are minted and burned by committee against main chain
settlement.

Any NEP-17 token with the same authorization rule can serve as the custodian;
the registry is pointed at one instance at deployment.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

TransferX notification. This is an enhanced transfer notification with
settlement details.

	TransferX:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: details
	    type: ByteArray
*/
package custodian

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'TokenCirculation' -> int
   total amount of minted credits
 - a<account> -> int
   balance sheet of all accounts
*/

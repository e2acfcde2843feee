/*
Package registry implements Registry contract, the factory and index of
Contest contract instances.

Registry contract is the only trusted deployment path for contests: it
validates creation parameters, collects the platform fee, deploys a fresh
Contest contract seeded with the configuration, funds its escrow with the
prize pool from the creator's custodian balance and indexes the instance by
creator. Creators supply the Contest contract NEF with their transaction; the
registry accepts it only if it is byte-identical (by SHA-256) to the NEF it
was initialized with. The manifest is never taken from the creator: the
registry keeps a trusted manifest template from initialization and splices
only the contest-unique contract name into it, so every deployed contest is
known to run the audited code under the audited manifest (same method
offsets, safe methods, events and permissions).

All subsequent contest interactions go directly to the deployed instance.

# Contract notifications

ContestCreated notification. Produced on every deployed contest.

	ContestCreated:
	  - name: contest
	    type: Hash160
	  - name: creator
	    type: Hash160

FeeChanged notification. Produced on every platform fee change.

	FeeChanged:
	  - name: fee
	    type: Integer
*/
package registry

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'c' -> interop.Hash160
   custodian token contract address
 - 'p' -> interop.Hash160
   platform fee collection account
 - 'f' -> int
   contest creation fee
 - 'h' -> []byte
   SHA-256 of the trusted Contest contract NEF
 - 'a', 'b' -> []byte
   trusted Contest manifest template, the halves around the contract name
 - 'n' -> int
   number of deployed contests
 - r<creator><contest> -> interop.Hash160
   contest index by creator
*/

/*
Package owners implements the owner registry of the custody engine.

A single OwnerSet record holds the ordered list of owner addresses, the
signature requirement (quorum size) and the owner capacity. All mutating
operations are gated on the caller being a current owner and maintain
the invariant

	1 <= required <= len(owners) <= maxOwners

at all times. Removing an owner may silently lower the requirement,
never raise it.
*/
package owners

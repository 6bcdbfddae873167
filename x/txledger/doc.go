/*
Package txledger implements the append-only transfer request ledger.

Every submitted request receives the next sequential id and is stored
forever. A request mutates exactly once, when its executed flag is set.
Enumeration by pending/executed filter is paginated with explicit bounds
checking instead of the undefined behavior of unchecked truncation.
*/
package txledger

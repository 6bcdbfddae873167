/*
Package engine wires the custody extensions into the public operation
surface of the shared-custody authorization engine.

Every public operation runs against a cache-wrap of the backing store:
the wrap is written when the operation succeeds and discarded when any
step fails, so no partial state is ever left committed. The one place
where state is committed before an external effect is transaction
execution, where the executed flag must be visible to any reentrant
call before the value release runs. A failed release is compensated
explicitly: the flag, the nonce and the spending debit are rolled back
as one unit.
*/
package engine

/*
Package x contains the custody extensions.

Each sub-package guards one aspect of the shared-custody state: the
owner registry, the transaction ledger, the signature quorum, the
daily spending window and the token deposit balances. The engine
package composes them into the public operations.

Extensions never gate on the caller themselves unless the check is
their own invariant. Caller authorization belongs to the engine.
*/
package x

/*
Package tokens tracks fungible-token deposits held by the engine.

The engine consumes an external token contract interface to pull
approved funds in and credits a per-depositor, per-token running
balance. This ledger is deposit only: the engine never withdraws the
tracked balances itself.
*/
package tokens

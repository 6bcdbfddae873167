/*
Package custody defines the common types shared by all packages of the
shared-custody authorization engine.

A fixed set of owners jointly controls a pool of value. Any transfer out
of the pool must be submitted by an owner and later executed with a
quorum of signatures. The engine package orchestrates the extensions
found under x/ and guarantees that every public operation is applied to
the backing store as a single atomic unit.
*/
package custody

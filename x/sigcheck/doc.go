/*
Package sigcheck builds and verifies the quorum signatures that release
value from the custody pool.

The signed object is a digest over the executable content of a request
(destination, value, payload) combined with the global nonce and a
domain separation prefix. A signature set is valid only for the exact
nonce it was produced for, which makes any replay of an old set fail
verification.
*/
package sigcheck

/*
Package errors implements custom error interfaces for the custody engine.

Error returned by this package are categorized by their root cause. Use
Register to declare a new root error and Wrap to add context to any
error instance. Matching is done through the root error Is method, which
follows the Cause chain, so that a caller can always react to the exact
failure condition regardless of how many layers of context were added.
*/
package errors

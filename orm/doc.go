/*
Package orm provides a thin db wrapper.

State space is broken into prefixed sections called Buckets. Each bucket
contains only one type of object, serialized through the object's own
Persistent implementation. Sequences provide monotonically increasing
counters whose byte representation sorts the same as the numeric value.
*/
package orm

/*
Package dailylimit implements the rolling 24 hour spending guard.

The guard tracks the cumulative value released since the last window
reset. An authorization first rolls the window forward when at least 24
hours have passed, then checks and commits the new spending in one step,
so there is no gap between check and debit.
*/
package dailylimit

/*
Package custodytest provides deterministic keys, stores and engine
collaborator doubles for tests.
*/
package custodytest

/*
Package vaulttest provides fixtures for testing code built on vault:
identities, transactions, in-memory stores and recorders for the ledger
collaborators.
*/
package vaulttest

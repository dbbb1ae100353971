/*
Package app contains the transaction executor of the ledger.

The Router dispatches every message to the handler registered for its path,
the Ledger runs each call as one atomic transaction over the committed store
and hands the events of successful calls to the EventEmitter.
*/
package app

// Package backend defines the contract for an addressable tabular document
// reachable through an asynchronous, batched request/flush protocol.
//
// Every read and write is scheduled against a Transaction and becomes
// observable only after Transaction.Sync returns. Connection.RunTransaction
// is the scoped acquisition of that protocol: it opens a batch scope, runs
// the caller's function, and guarantees the scope is flushed or discarded on
// every exit path.
//
// The package is pure contract plus addressing helpers; concrete backends
// live in subpackages (see backend/memory).
package backend

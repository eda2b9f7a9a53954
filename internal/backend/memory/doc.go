// Package memory provides an in-memory workbook implementing the backend
// contract, including its batched visibility rules: scheduled requests take
// effect only when a transaction Sync runs, in schedule order, and a failed
// request leaves earlier requests applied.
//
// It backs the engine's tests and the CLI harness. A production deployment
// would substitute an adapter over the real document API.
package memory

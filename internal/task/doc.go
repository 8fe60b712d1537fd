// Package task holds the to-do list model and its index allocation policy.
//
// A Store is an ordered collection of tasks keyed by a non-negative integer
// index. The document shape is the same in every serialization format:
//
//	tasks:
//	  - index: 0
//	    name: buy milk
//	    description: 2%
//	    completed: false
//
// In XML the root element is <tasks>, each record is a <task index="N">
// element holding <name>, <description> and <completed>.
//
// # Index Allocation
//
// Add assigns the smallest non-negative index not currently in use, so the
// index of a removed task is handed to the next added task:
//
//   - add, add, add       -> 0, 1, 2
//   - remove 1, then add  -> 1
//
// Clear resets allocation to start again from 0. Records are kept and written
// in ascending index order.
//
// # Validation
//
// Decoded stores are checked against an embedded JSON Schema (types, required
// keys, index >= 0) and for duplicate indices. See Store.Validate.
package task

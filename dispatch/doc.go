// Package dispatch tracks available drivers on a grid of cells and answers
// proximity queries.
//
// Index is the core structure: a map from Cell to an insertion-ordered set
// of drivers. A cell is present only while it holds at least one driver.
// Index does no locking; callers serialize access, or use Dispatcher,
// which wraps an Index with a lock and memoizes Nearby results in a
// bounded LRU cache.
package dispatch

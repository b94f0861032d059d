// Package store implements the in-process storage engine behind the
// sessionstorage module: an insertion-ordered mapping from string keys to
// structured values, point and batch operations over it, and the recursive
// deep-merge used by MergeItem/MultiMerge.
//
// The engine never performs I/O and never parses or serializes values; it
// keeps exactly what it is given. MemoryStore is not safe for concurrent use.
// Wrap it with NewSynchronizedStore when several goroutines share one store.
package store

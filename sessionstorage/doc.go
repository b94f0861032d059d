// Package sessionstorage exposes a sessionStorage-like key-value store to k6 scripts.
//
// High-level behavior:
//   - openStorage() returns a Storage object bound to the calling VU.
//   - Without a name, every call creates a fresh, isolated storage owned by the
//     script that opened it. Nothing is shared implicitly.
//   - With a name, all VUs in the test process receive the same storage; it is
//     guarded by a mutex because VUs run in parallel.
//   - All operations are synchronous and in-memory. Nothing outlives the k6 process.
package sessionstorage

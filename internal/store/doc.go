// Package store holds the journal's persistent collections: mood entries,
// custom activities, entitlement state and the user profile. Each store owns
// an in-memory collection and serializes it as one atomic document through a
// Provider, so the visible state never diverges from what is durably saved.
//
// The stores are designed for single-threaded, synchronous use by one
// logical caller; they are not safe for concurrent use without external
// locking.
package store

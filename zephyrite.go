// Package zephyrite is an embeddable key-value store with two durability
// tiers: a volatile in-memory backend and a WAL-backed persistent backend
// with crash recovery.
package zephyrite

// Version is the current Zephyrite release.
const Version = "0.1.0"

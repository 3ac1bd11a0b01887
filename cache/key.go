// Package cache provides the two storage tiers for parsed drawings: a
// byte-budgeted in-memory LRU and a disk tier with atomic record writes.
//
// Both tiers are keyed by content hash plus compute mode, gated by schema
// and parser version stamps. Values are type-parameterized so the tiers
// carry the caller's payload type without reflection.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Key identifies one cached parse result. Schema and Version gate records
// across layout and semantics changes; Hash is the content digest of the
// input bytes; Mode names the compute mode that produced the result.
type Key struct {
	Schema  int
	Version string
	Hash    string
	Mode    string
}

// String renders the canonical "schema:version:hash:mode" form.
func (k Key) String() string {
	return fmt.Sprintf("%d:%s:%s:%s", k.Schema, k.Version, k.Hash, k.Mode)
}

// Filename returns the disk record name for this key. Schema and Version
// live inside the record, not in the name, so a version bump invalidates
// existing records in place instead of leaking them.
func (k Key) Filename() string {
	return k.Hash + "-" + k.Mode + ".json"
}

// HashBytes returns the hex content digest used as Key.Hash.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

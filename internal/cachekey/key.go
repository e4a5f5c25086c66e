package cachekey

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

/*
Responsibilities
- Turn a request URL into a stable, filesystem-safe cache identifier

Key Semantics
- Pure function, no I/O, total for any string input
- The same URL always yields the same key, across calls and across
  process restarts
- Distinct URLs yield distinct keys with overwhelming probability
  (BLAKE3-256 collision resistance)

The algorithm is fixed. Changing it would orphan every entry written
by earlier releases, so a change must also bump the entry name
version in the store.
*/

// DeriveKey returns the cache identifier for a URL: the BLAKE3-256
// digest of the URL bytes, encoded as lowercase hex (64 characters).
// URLs contain characters that are illegal or awkward in filenames
// (`/`, `:`, `?`); hashing sidesteps escaping rules entirely and
// bounds the name length.
func DeriveKey(url string) string {
	digest := blake3.Sum256([]byte(url))
	return hex.EncodeToString(digest[:])
}

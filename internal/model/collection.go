package model

import (
	"fmt"
	"regexp"
)

// CollectionKey names a user's partition in the vector store. Derive it with
// CollectionKeyForUser instead of formatting the name at call sites.
type CollectionKey string

func (k CollectionKey) String() string { return string(k) }

// userIDPattern matches IDs that are safe to embed in a collection name.
var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidUserID reports whether id can be used to derive a collection key.
func ValidUserID(id string) bool {
	return userIDPattern.MatchString(id)
}

// CollectionKeyForUser derives the per-user collection name.
func CollectionKeyForUser(userID string) CollectionKey {
	return CollectionKey(fmt.Sprintf("user_%s_docs", userID))
}

package domain

import (
	"strings"

	"github.com/google/uuid"
)

var catalogNamespace = uuid.MustParse("3d9f1c52-7a0e-4b8c-9e61-5f2a8c4d0b17")

// StableID derives a deterministic UUID for a catalog entry from its kind and
// name, so re-running a seed or import updates rows instead of duplicating them.
func StableID(kind, name string) string {
	key := kind + ":" + strings.ToLower(strings.TrimSpace(name))
	return uuid.NewSHA1(catalogNamespace, []byte(key)).String()
}

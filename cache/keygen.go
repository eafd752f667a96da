package cache

import (
	"strconv"
	"strings"
)

// Key namespaces. Every key is "<namespace>:<identifier>", and no namespace is
// a prefix of another followed by ':' so keys from different namespaces never collide.
const (
	NamespaceEntity        = "entity"
	NamespaceEntitySummary = "entity-summary"
	NamespaceAbility       = "ability"
	NamespaceEvolution     = "evolution"
	NamespaceList          = "list"
)

// EntityKey is the key of an assembled entity detail
func EntityKey(id int) string {
	return join(NamespaceEntity, strconv.Itoa(id))
}

// EntitySummaryKey is the key of a list-view summary
func EntitySummaryKey(id int) string {
	return join(NamespaceEntitySummary, strconv.Itoa(id))
}

// AbilityKey is the key of a resolved ability description
func AbilityKey(name string) string {
	return join(NamespaceAbility, name)
}

// EvolutionKey is the key of a flattened evolution chain
func EvolutionKey(chainID int) string {
	return join(NamespaceEvolution, strconv.Itoa(chainID))
}

// ListKey is the key of an assembled list page
func ListKey(offset, limit int) string {
	return join(NamespaceList, strconv.Itoa(offset), strconv.Itoa(limit))
}

// Namespace returns the namespace part of a key built by this package
func Namespace(key string) string {
	ns, _, found := strings.Cut(key, ":")
	if !found {
		return "unknown"
	}
	return ns
}

func join(parts ...string) string {
	return strings.Join(parts, ":")
}

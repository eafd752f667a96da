package catalog

// EntitySummary is the list-view shape of an entity
type EntitySummary struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Types  []string `json:"types,omitempty"`
	Sprite string   `json:"sprite,omitempty"`
}

// AbilityInfo is a resolved ability. Effect is never empty: failures are
// replaced with a placeholder text.
type AbilityInfo struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"is_hidden"`
	Effect   string `json:"effect"`
}

// EvolutionNode is one step of a flattened evolution path, root first
type EvolutionNode struct {
	ID       int    `json:"id"` // zero when the species URL carries no numeric id
	Name     string `json:"name"`
	MinLevel *int   `json:"min_level"`
}

type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// EntityDetail is the composite entity served by the detail view
type EntityDetail struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Height         int             `json:"height"`
	Weight         int             `json:"weight"`
	BaseExperience *int            `json:"base_experience"`
	Types          []string        `json:"types"`
	Abilities      []AbilityInfo   `json:"abilities"`
	Stats          []Stat          `json:"stats"`
	Moves          []string        `json:"moves"`
	EvolutionChain []EvolutionNode `json:"evolution_chain"`
}

const (
	// MaxAbilities bounds the per-entity ability fan-out
	MaxAbilities = 3
	MaxMoves     = 30
)

// Ability effect placeholders
const (
	EffectRateLimited = "Information temporarily unavailable due to rate limiting."
	EffectUnavailable = "Failed to load ability information."
	EffectMissing     = "No description available."
)

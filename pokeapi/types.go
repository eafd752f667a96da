package pokeapi

// Upstream resource shapes, nullable fields as pointers.
// Only the fields the catalog consumes are decoded.

type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type APIResource struct {
	URL string `json:"url"`
}

// Page is a paged resource index, e.g. /pokemon?offset=0&limit=20
type Page struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

type Pokemon struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Height         int              `json:"height"`
	Weight         int              `json:"weight"`
	BaseExperience *int             `json:"base_experience"`
	Types          []PokemonType    `json:"types"`
	Abilities      []PokemonAbility `json:"abilities"`
	Stats          []PokemonStat    `json:"stats"`
	Moves          []PokemonMove    `json:"moves"`
	Species        NamedResource    `json:"species"`
	Sprites        Sprites          `json:"sprites"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

type PokemonMove struct {
	Move NamedResource `json:"move"`
}

type Sprites struct {
	FrontDefault *string `json:"front_default"`
}

type Species struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	EvolutionChain *APIResource `json:"evolution_chain"`
}

type Ability struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	EffectEntries []EffectEntry `json:"effect_entries"`
}

type EffectEntry struct {
	Effect      string        `json:"effect"`
	ShortEffect string        `json:"short_effect"`
	Language    NamedResource `json:"language"`
}

type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

type ChainLink struct {
	IsBaby           bool              `json:"is_baby"`
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

type EvolutionDetail struct {
	MinLevel *int          `json:"min_level"`
	Trigger  NamedResource `json:"trigger"`
}

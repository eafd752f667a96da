package pokeapitest

import (
	"fmt"

	"github.com/briangreenhill/pokedex/pokeapi"
)

// SeedCount is the number of entities in the default paged index, ids 1..SeedCount
const SeedCount = 40

// Chain ids of the default fixtures
const (
	ChainBulbasaur  = 1
	ChainCharmander = 2
	ChainSquirtle   = 3
	ChainBranching  = 4
)

type mon struct {
	id        int
	name      string
	types     []string
	abilities []string // the last one is hidden when there are more than one
	chainID   int      // 0 when the species has no chain
}

// seed loads the default fixtures:
//
//	1-3    bulbasaur line, grass/poison, 4 abilities, 40 moves, levels 16 and 32
//	4-6    charmander line, levels 16 and 36
//	7-9    squirtle line, levels 16 and 36
//	10-12  a branching chain: mon-10 evolves into mon-11 (level 20) or mon-12
//	13-40  unevolving synthetic entities
func (s *Server) seed() {
	mons := []mon{
		{1, "bulbasaur", []string{"grass", "poison"}, []string{"overgrow", "leaf-guard", "sap-sipper", "chlorophyll"}, ChainBulbasaur},
		{2, "ivysaur", []string{"grass", "poison"}, []string{"overgrow", "chlorophyll"}, ChainBulbasaur},
		{3, "venusaur", []string{"grass", "poison"}, []string{"overgrow", "chlorophyll"}, ChainBulbasaur},
		{4, "charmander", []string{"fire"}, []string{"blaze", "solar-power"}, ChainCharmander},
		{5, "charmeleon", []string{"fire"}, []string{"blaze", "solar-power"}, ChainCharmander},
		{6, "charizard", []string{"fire", "flying"}, []string{"blaze", "solar-power"}, ChainCharmander},
		{7, "squirtle", []string{"water"}, []string{"torrent", "rain-dish"}, ChainSquirtle},
		{8, "wartortle", []string{"water"}, []string{"torrent", "rain-dish"}, ChainSquirtle},
		{9, "blastoise", []string{"water"}, []string{"torrent", "rain-dish"}, ChainSquirtle},
		{10, "mon-10", []string{"normal"}, []string{"run-away"}, ChainBranching},
		{11, "mon-11", []string{"normal"}, []string{"run-away"}, ChainBranching},
		{12, "mon-12", []string{"normal"}, []string{"run-away"}, ChainBranching},
	}
	for id := 13; id <= SeedCount; id++ {
		mons = append(mons, mon{id, fmt.Sprintf("mon-%d", id), []string{"normal"}, []string{"run-away"}, 0})
	}

	for _, m := range mons {
		s.AddPokemon(s.pokemonFixture(m))
		sp := pokeapi.Species{ID: m.id, Name: m.name}
		if m.chainID != 0 {
			sp.EvolutionChain = &pokeapi.APIResource{URL: s.Ref("evolution-chain", m.chainID)}
		}
		s.AddSpecies(sp)
	}

	s.AddChain(s.linearChain(ChainBulbasaur, []int{1, 2, 3}, []string{"bulbasaur", "ivysaur", "venusaur"}, []int{16, 32}))
	s.AddChain(s.linearChain(ChainCharmander, []int{4, 5, 6}, []string{"charmander", "charmeleon", "charizard"}, []int{16, 36}))
	s.AddChain(s.linearChain(ChainSquirtle, []int{7, 8, 9}, []string{"squirtle", "wartortle", "blastoise"}, []int{16, 36}))
	s.AddChain(pokeapi.EvolutionChain{
		ID: ChainBranching,
		Chain: pokeapi.ChainLink{
			Species: s.named("pokemon-species", 10, "mon-10"),
			EvolvesTo: []pokeapi.ChainLink{
				{
					Species:          s.named("pokemon-species", 11, "mon-11"),
					EvolutionDetails: []pokeapi.EvolutionDetail{{MinLevel: intPtr(20), Trigger: pokeapi.NamedResource{Name: "level-up"}}},
				},
				{
					Species:          s.named("pokemon-species", 12, "mon-12"),
					EvolutionDetails: []pokeapi.EvolutionDetail{{Trigger: pokeapi.NamedResource{Name: "use-item"}}},
				},
			},
		},
	})

	s.AddAbility(englishAbility(65, "overgrow", "Strengthens grass moves to inflict 1.5x damage at 1/3 max HP or less."))
	s.AddAbility(pokeapi.Ability{
		ID:   34,
		Name: "chlorophyll",
		EffectEntries: []pokeapi.EffectEntry{
			{Effect: "Verdoppelt die Initiative bei Sonnenschein.", Language: pokeapi.NamedResource{Name: "de"}},
			{Effect: "Doubles Speed during strong sunlight.", ShortEffect: "Doubles Speed in sun.", Language: pokeapi.NamedResource{Name: "en"}},
		},
	})
	s.AddAbility(pokeapi.Ability{
		ID:   102,
		Name: "leaf-guard",
		EffectEntries: []pokeapi.EffectEntry{
			{Effect: "Verhindert Statusprobleme bei Sonnenschein.", Language: pokeapi.NamedResource{Name: "de"}},
		},
	})
	s.AddAbility(englishAbility(157, "sap-sipper", "Absorbs grass moves, raising Attack one stage."))
	s.AddAbility(englishAbility(66, "blaze", "Strengthens fire moves to inflict 1.5x damage at 1/3 max HP or less."))
	s.AddAbility(englishAbility(94, "solar-power", "Increases Special Attack to 1.5x during strong sunlight."))
	s.AddAbility(englishAbility(67, "torrent", "Strengthens water moves to inflict 1.5x damage at 1/3 max HP or less."))
	s.AddAbility(englishAbility(44, "rain-dish", "Heals for 1/16 max HP after each turn during rain."))
	s.AddAbility(englishAbility(50, "run-away", "Always escapes from wild battles."))
}

func (s *Server) pokemonFixture(m mon) pokeapi.Pokemon {
	p := pokeapi.Pokemon{
		ID:             m.id,
		Name:           m.name,
		Height:         7 + m.id,
		Weight:         69 + m.id*10,
		BaseExperience: intPtr(64),
		Species:        s.named("pokemon-species", m.id, m.name),
		Sprites: pokeapi.Sprites{
			FrontDefault: strPtr(fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", m.id)),
		},
	}
	for i, t := range m.types {
		p.Types = append(p.Types, pokeapi.PokemonType{Slot: i + 1, Type: pokeapi.NamedResource{Name: t}})
	}
	for i, a := range m.abilities {
		hidden := len(m.abilities) > 1 && i == len(m.abilities)-1
		p.Abilities = append(p.Abilities, pokeapi.PokemonAbility{
			Ability:  s.named("ability", a, a),
			IsHidden: hidden,
			Slot:     i + 1,
		})
	}
	for i, stat := range []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"} {
		p.Stats = append(p.Stats, pokeapi.PokemonStat{BaseStat: 45 + i*5, Stat: pokeapi.NamedResource{Name: stat}})
	}
	moves := 4
	if m.id <= 3 {
		moves = 40
	}
	for i := 1; i <= moves; i++ {
		p.Moves = append(p.Moves, pokeapi.PokemonMove{Move: pokeapi.NamedResource{Name: fmt.Sprintf("move-%02d", i)}})
	}
	return p
}

func (s *Server) linearChain(id int, ids []int, names []string, levels []int) pokeapi.EvolutionChain {
	var build func(i int) pokeapi.ChainLink
	build = func(i int) pokeapi.ChainLink {
		link := pokeapi.ChainLink{Species: s.named("pokemon-species", ids[i], names[i])}
		if i > 0 {
			link.EvolutionDetails = []pokeapi.EvolutionDetail{{MinLevel: intPtr(levels[i-1]), Trigger: pokeapi.NamedResource{Name: "level-up"}}}
		}
		if i+1 < len(ids) {
			link.EvolvesTo = []pokeapi.ChainLink{build(i + 1)}
		}
		return link
	}
	return pokeapi.EvolutionChain{ID: id, Chain: build(0)}
}

func (s *Server) named(kind string, id any, name string) pokeapi.NamedResource {
	return pokeapi.NamedResource{Name: name, URL: s.Ref(kind, id)}
}

func englishAbility(id int, name, effect string) pokeapi.Ability {
	return pokeapi.Ability{
		ID:   id,
		Name: name,
		EffectEntries: []pokeapi.EffectEntry{
			{Effect: effect, Language: pokeapi.NamedResource{Name: "en"}},
		},
	}
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

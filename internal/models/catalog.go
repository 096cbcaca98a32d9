package models

type Type = string

type Region = string

// AllTypes are the creature types offered by the new entry form.
var AllTypes = []Type{
	"normal", "fire", "water", "electric", "grass", "ice", "fighting", "poison", "ground",
	"flying", "psychic", "bug", "rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// AllRegions are the regions offered by the new entry form.
var AllRegions = []Region{
	"Kanto", "Johto", "Hoenn", "Sinnoh", "Unova", "Kalos", "Alola", "Galar", "Paldea",
}

// MaxTeamSize is the amount of members a team can hold.
const MaxTeamSize = 6

type CatalogEntry struct {
	ID            int    `json:"id"`
	Name          string `json:"name" validate:"required"`
	PokedexNumber int    `json:"pokedex_number" validate:"required"`
	SpriteURL     string `json:"sprite_url" validate:"required"`
	PrimaryType   Type   `json:"primary_type" validate:"required"`
	SecondaryType Type   `json:"secondary_type,omitempty"`
	Region        Region `json:"region" validate:"required"`
}

type Membership struct {
	EntryID  int    `json:"entry_id" validate:"required"`
	Nickname string `json:"nickname"`
}

// TeamEntry is a catalog entry joined with its team membership.
type TeamEntry struct {
	CatalogEntry
	Nickname string `json:"nickname"`
}

// DisplayName returns the nickname, falling back to the catalog name.
func (t TeamEntry) DisplayName() string {
	if t.Nickname != "" {
		return t.Nickname
	}
	return t.Name
}

// Draft is the new catalog entry form.
type Draft struct {
	Name          string `json:"name" validate:"required"`
	PokedexNumber int    `json:"pokedex_number" validate:"required"`
	SpriteURL     string `json:"sprite_url" validate:"required"`
	PrimaryType   Type   `json:"primary_type" validate:"required"`
	SecondaryType Type   `json:"secondary_type"`
	Region        Region `json:"region" validate:"required"`
}

func (d Draft) Entry() CatalogEntry {
	return CatalogEntry{
		Name:          d.Name,
		PokedexNumber: d.PokedexNumber,
		SpriteURL:     d.SpriteURL,
		PrimaryType:   d.PrimaryType,
		SecondaryType: d.SecondaryType,
		Region:        d.Region,
	}
}

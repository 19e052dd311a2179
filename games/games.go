package games

// GameType identifies one supported game title. Every title the portal
// manages is a distinct first-class type, even when the community's forum
// models a whole series as a single group.
type GameType string

const (
	// GameUnknown is the zero/sentinel title; claims carrying it are not
	// scoped to any particular game.
	GameUnknown GameType = "Unknown"

	CallOfDuty2 GameType = "CallOfDuty2"
	CallOfDuty4 GameType = "CallOfDuty4"
	CallOfDuty5 GameType = "CallOfDuty5"

	Insurgency GameType = "Insurgency"
	Minecraft  GameType = "Minecraft"
	Rust       GameType = "Rust"
	Left4Dead2 GameType = "Left4Dead2"

	ARMA  GameType = "ARMA"
	ARMA2 GameType = "ARMA2"
	ARMA3 GameType = "ARMA3"

	Battlefield1           GameType = "Battlefield1"
	Battlefield3           GameType = "Battlefield3"
	Battlefield4           GameType = "Battlefield4"
	Battlefield5           GameType = "Battlefield5"
	BattlefieldBadCompany2 GameType = "BattlefieldBadCompany2"

	PlayerUnknownsBattlegrounds GameType = "PlayerUnknownsBattlegrounds"
	WorldWar3                   GameType = "WorldWar3"
	UnrealTournament2004        GameType = "UnrealTournament2004"
)

// All lists every supported title, excluding GameUnknown.
var All = []GameType{
	CallOfDuty2, CallOfDuty4, CallOfDuty5,
	Insurgency, Minecraft, Rust, Left4Dead2,
	ARMA, ARMA2, ARMA3,
	Battlefield1, Battlefield3, Battlefield4, Battlefield5, BattlefieldBadCompany2,
	PlayerUnknownsBattlegrounds, WorldWar3, UnrealTournament2004,
}

var byName = func() map[string]GameType {
	m := make(map[string]GameType, len(All))
	for _, g := range All {
		m[string(g)] = g
	}
	return m
}()

// Parse resolves a game type by its exact name.
// Returns ok=false for anything not in the supported set (including "Unknown").
func Parse(s string) (GameType, bool) {
	g, ok := byName[s]
	return g, ok
}

func (g GameType) String() string { return string(g) }

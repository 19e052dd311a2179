package claims

import (
	"github.com/google/uuid"

	"github.com/legit-games/portal-iam/games"
)

// Qualifier sets for the portal's list categories. A claim of one of these
// types grants visibility of the category, game-wide or per item; the same
// sets back the category access policies and the derived query filters.
var (
	BanFileMonitorQualifiers = []ClaimType{TypeSeniorAdmin, TypeHeadAdmin, TypeGameAdmin, TypeBanFileMonitor}
	GameServerQualifiers     = []ClaimType{TypeSeniorAdmin, TypeHeadAdmin, TypeGameAdmin, TypeGameServer}
)

// Filter is the query scope derived from a principal's claims: the games they
// hold a game-wide qualifying claim for, and the individual resource ids they
// hold item-scoped grants for. List queries apply it as an OR: item's game is
// in Games, or item's id is in Items.
type Filter struct {
	Games []games.GameType
	Items []uuid.UUID
}

// Empty reports whether the filter grants visibility of nothing at all.
func (f Filter) Empty() bool { return len(f.Games) == 0 && len(f.Items) == 0 }

// DeriveFilter partitions a principal's claims by the qualifying claim types
// and buckets each qualifying claim's value as either a game-wide grant or a
// single-item grant. The not-game-specific sentinel (senior admins) expands to
// every supported title. An item grant for a game the principal already holds
// game-wide is redundant but harmless at the query layer, so it is kept.
func DeriveFilter(cs []Claim, qualifying []ClaimType) Filter {
	want := make(map[ClaimType]struct{}, len(qualifying))
	for _, t := range qualifying {
		want[t] = struct{}{}
	}

	var f Filter
	seenGame := make(map[games.GameType]struct{})
	seenItem := make(map[uuid.UUID]struct{})
	addGame := func(g games.GameType) {
		if _, dup := seenGame[g]; !dup {
			seenGame[g] = struct{}{}
			f.Games = append(f.Games, g)
		}
	}
	for _, c := range cs {
		if _, ok := want[c.Type]; !ok {
			continue
		}
		if c.Value.IsSentinel() {
			for _, g := range games.All {
				addGame(g)
			}
			continue
		}
		if g, ok := c.Value.Game(); ok {
			addGame(g)
			continue
		}
		if id, ok := c.Value.Resource(); ok {
			if _, dup := seenItem[id]; !dup {
				seenItem[id] = struct{}{}
				f.Items = append(f.Items, id)
			}
		}
	}
	return f
}

// ClaimedGameTypes returns only the game-wide half of the derived filter.
func ClaimedGameTypes(cs []Claim, qualifying []ClaimType) []games.GameType {
	return DeriveFilter(cs, qualifying).Games
}

// ClaimedGamesAndItems returns both halves of the derived filter.
func ClaimedGamesAndItems(cs []Claim, qualifying []ClaimType) ([]games.GameType, []uuid.UUID) {
	f := DeriveFilter(cs, qualifying)
	return f.Games, f.Items
}

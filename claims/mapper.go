package claims

import (
	"strings"

	"github.com/legit-games/portal-iam/games"
)

// groupEntry is one row of the forum-group mapping table: the claim type to
// emit and the titles it covers. Series groups simply list several titles, so
// fan-out is a property of the data, not of the matching code.
type groupEntry struct {
	claimType ClaimType
	titles    []games.GameType
}

func entry(t ClaimType, titles ...games.GameType) []groupEntry {
	return []groupEntry{{claimType: t, titles: titles}}
}

// series holds the registered game families; series group rows fan out to the
// family members rather than repeating the title lists inline.
var series = games.NewFamily()

func seriesEntry(t ClaimType, familyName string) []groupEntry {
	return []groupEntry{{claimType: t, titles: series.Members(familyName)}}
}

// groupTable maps forum group names to the claims they grant. Matching is
// exact and case-sensitive after normalization (see MapGroup). The forum
// models the ARMA and Battlefield series as single groups; the portal treats
// each title separately, so those rows list every member title.
var groupTable = map[string][]groupEntry{
	"Senior Admin": {{claimType: TypeSeniorAdmin}},

	"COD2 Head Admin": entry(TypeHeadAdmin, games.CallOfDuty2),
	"COD2 Admin":      entry(TypeGameAdmin, games.CallOfDuty2),
	"COD2 Moderator":  entry(TypeModerator, games.CallOfDuty2),

	"COD4 Head Admin": entry(TypeHeadAdmin, games.CallOfDuty4),
	"COD4 Admin":      entry(TypeGameAdmin, games.CallOfDuty4),
	"COD4 Moderator":  entry(TypeModerator, games.CallOfDuty4),

	"COD5 Head Admin": entry(TypeHeadAdmin, games.CallOfDuty5),
	"COD5 Admin":      entry(TypeGameAdmin, games.CallOfDuty5),
	"COD5 Moderator":  entry(TypeModerator, games.CallOfDuty5),

	"Insurgency Head Admin": entry(TypeHeadAdmin, games.Insurgency),
	"Insurgency Admin":      entry(TypeGameAdmin, games.Insurgency),
	"Insurgency Moderator":  entry(TypeModerator, games.Insurgency),

	"Minecraft Head Admin": entry(TypeHeadAdmin, games.Minecraft),
	"Minecraft Admin":      entry(TypeGameAdmin, games.Minecraft),
	"Minecraft Moderator":  entry(TypeModerator, games.Minecraft),

	"Rust Head Admin": entry(TypeHeadAdmin, games.Rust),
	"Rust Admin":      entry(TypeGameAdmin, games.Rust),
	"Rust Moderator":  entry(TypeModerator, games.Rust),

	"L4D2 Head Admin": entry(TypeHeadAdmin, games.Left4Dead2),
	"L4D2 Admin":      entry(TypeGameAdmin, games.Left4Dead2),
	"L4D2 Moderator":  entry(TypeModerator, games.Left4Dead2),

	"ARMA Head Admin": seriesEntry(TypeHeadAdmin, "ARMA"),
	"ARMA Admin":      seriesEntry(TypeGameAdmin, "ARMA"),
	"ARMA Moderator":  seriesEntry(TypeModerator, "ARMA"),

	"Battlefield Head Admin": seriesEntry(TypeHeadAdmin, "Battlefield"),
	"Battlefield Admin":      seriesEntry(TypeGameAdmin, "Battlefield"),
	"Battlefield Moderator":  seriesEntry(TypeModerator, "Battlefield"),

	"PUBG Head Admin": entry(TypeHeadAdmin, games.PlayerUnknownsBattlegrounds),
	"PUBG Admin":      entry(TypeGameAdmin, games.PlayerUnknownsBattlegrounds),
	"PUBG Moderator":  entry(TypeModerator, games.PlayerUnknownsBattlegrounds),

	"WW3 Head Admin": entry(TypeHeadAdmin, games.WorldWar3),
	"WW3 Admin":      entry(TypeGameAdmin, games.WorldWar3),
	"WW3 Moderator":  entry(TypeModerator, games.WorldWar3),

	"UT2K4 Head Admin": entry(TypeHeadAdmin, games.UnrealTournament2004),
	"UT2K4 Admin":      entry(TypeGameAdmin, games.UnrealTournament2004),
	"UT2K4 Moderator":  entry(TypeModerator, games.UnrealTournament2004),
}

// MapGroup resolves a forum group name to the claims it grants. The name is
// trimmed and literal '+' characters are removed first; the forum decorates
// some groups with a trailing '+'. Unknown names yield an empty result, since
// a group the portal has no mapping for simply grants nothing.
func MapGroup(groupName string) []Claim {
	name := strings.TrimSpace(strings.ReplaceAll(groupName, "+", ""))
	entries, ok := groupTable[name]
	if !ok {
		return nil
	}
	var out []Claim
	for _, e := range entries {
		if len(e.titles) == 0 {
			out = append(out, Claim{Type: e.claimType, Value: Sentinel()})
			continue
		}
		for _, g := range e.titles {
			out = append(out, Claim{Type: e.claimType, Value: GameValue(g)})
		}
	}
	return out
}

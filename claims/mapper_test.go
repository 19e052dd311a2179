package claims

import (
	"testing"

	"github.com/legit-games/portal-iam/games"
)

func claimSet(cs []Claim) map[string]struct{} {
	m := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		m[string(c.Type)+"|"+c.Value.String()] = struct{}{}
	}
	return m
}

func TestMapGroup_SingleTitle(t *testing.T) {
	tests := []struct {
		group     string
		claimType ClaimType
		game      games.GameType
	}{
		{"COD2 Head Admin", TypeHeadAdmin, games.CallOfDuty2},
		{"COD4 Admin", TypeGameAdmin, games.CallOfDuty4},
		{"COD5 Moderator", TypeModerator, games.CallOfDuty5},
		{"Insurgency Admin", TypeGameAdmin, games.Insurgency},
		{"Minecraft Head Admin", TypeHeadAdmin, games.Minecraft},
		{"Rust Moderator", TypeModerator, games.Rust},
		{"L4D2 Admin", TypeGameAdmin, games.Left4Dead2},
		{"PUBG Admin", TypeGameAdmin, games.PlayerUnknownsBattlegrounds},
		{"WW3 Head Admin", TypeHeadAdmin, games.WorldWar3},
		{"UT2K4 Moderator", TypeModerator, games.UnrealTournament2004},
	}

	for _, tc := range tests {
		t.Run(tc.group, func(t *testing.T) {
			got := MapGroup(tc.group)
			if len(got) != 1 {
				t.Fatalf("expected 1 claim, got %d", len(got))
			}
			if got[0].Type != tc.claimType {
				t.Errorf("type = %s, want %s", got[0].Type, tc.claimType)
			}
			g, ok := got[0].Value.Game()
			if !ok || g != tc.game {
				t.Errorf("value = %s, want game %s", got[0].Value, tc.game)
			}
		})
	}
}

func TestMapGroup_SeniorAdmin(t *testing.T) {
	got := MapGroup("Senior Admin")
	if len(got) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(got))
	}
	if got[0].Type != TypeSeniorAdmin {
		t.Errorf("type = %s, want SeniorAdmin", got[0].Type)
	}
	if !got[0].Value.IsSentinel() {
		t.Errorf("senior admin value should be the not-game-specific sentinel, got %s", got[0].Value)
	}
}

func TestMapGroup_SeriesFanOut(t *testing.T) {
	t.Run("ARMA Head Admin fans out to all three titles", func(t *testing.T) {
		got := MapGroup("ARMA Head Admin")
		if len(got) != 3 {
			t.Fatalf("expected 3 claims, got %d", len(got))
		}
		set := claimSet(got)
		for _, g := range []games.GameType{games.ARMA, games.ARMA2, games.ARMA3} {
			if _, ok := set["HeadAdmin|"+string(g)]; !ok {
				t.Errorf("missing HeadAdmin claim for %s", g)
			}
		}
	})

	t.Run("Battlefield Admin fans out to all five titles", func(t *testing.T) {
		got := MapGroup("Battlefield Admin")
		if len(got) != 5 {
			t.Fatalf("expected 5 claims, got %d", len(got))
		}
		set := claimSet(got)
		for _, g := range []games.GameType{
			games.Battlefield1, games.Battlefield3, games.Battlefield4,
			games.Battlefield5, games.BattlefieldBadCompany2,
		} {
			if _, ok := set["GameAdmin|"+string(g)]; !ok {
				t.Errorf("missing GameAdmin claim for %s", g)
			}
		}
	})
}

func TestMapGroup_Normalization(t *testing.T) {
	want := claimSet(MapGroup("COD2 Admin"))
	if len(want) == 0 {
		t.Fatalf("baseline group did not map")
	}

	variants := []string{
		"COD2 Admin  ",
		"  COD2 Admin",
		"COD2 Admin+",
		"+COD2 Admin+",
	}
	for _, v := range variants {
		t.Run(v, func(t *testing.T) {
			got := claimSet(MapGroup(v))
			if len(got) != len(want) {
				t.Fatalf("%q mapped to %d claims, want %d", v, len(got), len(want))
			}
			for k := range want {
				if _, ok := got[k]; !ok {
					t.Errorf("%q missing claim %s", v, k)
				}
			}
		})
	}
}

func TestMapGroup_Unknown(t *testing.T) {
	tests := []string{
		"Members",
		"cod2 admin",  // case-sensitive
		"COD2  Admin", // interior whitespace is not collapsed
		"",
	}
	for _, name := range tests {
		if got := MapGroup(name); len(got) != 0 {
			t.Errorf("MapGroup(%q) = %v, want empty", name, got)
		}
	}
}

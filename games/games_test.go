package games

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want GameType
		ok   bool
	}{
		{"CallOfDuty4", CallOfDuty4, true},
		{"BattlefieldBadCompany2", BattlefieldBadCompany2, true},
		{"PlayerUnknownsBattlegrounds", PlayerUnknownsBattlegrounds, true},
		{"Unknown", "", false},
		{"callofduty4", "", false},
		{"", "", false},
		{"COD4", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, ok := Parse(tc.name)
			if ok != tc.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tc.name, ok, tc.ok)
			}
			if ok && g != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.name, g, tc.want)
			}
		})
	}
}

func TestAllRoundTrips(t *testing.T) {
	for _, g := range All {
		got, ok := Parse(string(g))
		if !ok || got != g {
			t.Errorf("Parse(%q) = %v, %v; want %v, true", string(g), got, ok, g)
		}
	}
}

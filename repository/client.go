// Package repository defines the client surface of the external repository
// API the portal delegates data access to. Only the interfaces live here;
// transport and implementation belong to the API client, not the portal.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/legit-games/portal-iam/games"
)

// ListFilter scopes a list query to what the principal may see: items whose
// game type is in Games OR whose id is in Items. Both empty means no access.
type ListFilter struct {
	Games []games.GameType
	Items []uuid.UUID
}

// Empty reports whether the filter matches nothing.
func (f ListFilter) Empty() bool { return len(f.Games) == 0 && len(f.Items) == 0 }

// BanFileMonitor is a repository-side ban file monitor record.
type BanFileMonitor struct {
	ID       uuid.UUID      `json:"id"`
	Game     games.GameType `json:"game_type"`
	FilePath string         `json:"file_path"`
	URL      string         `json:"url"`
}

// GameServer is a repository-side game server record.
type GameServer struct {
	ID       uuid.UUID      `json:"id"`
	Game     games.GameType `json:"game_type"`
	Title    string         `json:"title"`
	Hostname string         `json:"hostname"`
	Port     int            `json:"port"`
}

// BanFileMonitors lists ban file monitors visible under a filter.
type BanFileMonitors interface {
	List(ctx context.Context, filter ListFilter) ([]BanFileMonitor, error)
}

// GameServers lists game servers visible under a filter.
type GameServers interface {
	List(ctx context.Context, filter ListFilter) ([]GameServer, error)
}

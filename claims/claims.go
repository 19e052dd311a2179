package claims

import (
	"github.com/google/uuid"

	"github.com/legit-games/portal-iam/games"
)

// ClaimType is the closed set of permission and profile claim kinds the
// portal understands.
type ClaimType string

const (
	// Admin-level claims, game scoped via their value.
	TypeSeniorAdmin ClaimType = "SeniorAdmin"
	TypeHeadAdmin   ClaimType = "HeadAdmin"
	TypeGameAdmin   ClaimType = "GameAdmin"
	TypeModerator   ClaimType = "Moderator"

	// Resource-category claims; value is a game type for a game-wide grant
	// or a resource id for a single-item grant.
	TypeBanFileMonitor  ClaimType = "BanFileMonitor"
	TypeGameServer      ClaimType = "GameServer"
	TypeRconCredentials ClaimType = "RconCredentials"
	TypeFtpCredentials  ClaimType = "FtpCredentials"

	// Portal/profile claims, carried alongside permission claims in the
	// session credential. Not consulted by policy evaluation.
	TypePhotoURL      ClaimType = "PhotoUrl"
	TypeTimeZone      ClaimType = "TimeZone"
	TypeUserProfileID ClaimType = "UserProfileId"
)

// Level orders the admin claim types. A claim at a given level satisfies any
// requirement at that level or below for the same game.
type Level int

const (
	LevelNone Level = iota
	LevelModerator
	LevelGameAdmin
	LevelHeadAdmin
	LevelSeniorAdmin
)

// LevelOf returns the admin level of a claim type, or LevelNone for
// resource-category and profile claim types.
func LevelOf(t ClaimType) Level {
	switch t {
	case TypeSeniorAdmin:
		return LevelSeniorAdmin
	case TypeHeadAdmin:
		return LevelHeadAdmin
	case TypeGameAdmin:
		return LevelGameAdmin
	case TypeModerator:
		return LevelModerator
	default:
		return LevelNone
	}
}

type valueKind int

const (
	kindSentinel valueKind = iota
	kindGame
	kindResource
	kindText
)

// sentinelMarker is the stored form of the not-game-specific value carried by
// SeniorAdmin claims.
const sentinelMarker = "*"

// ClaimValue is the value half of a claim. It is one of: a game type (a
// game-wide grant), a resource id (a single-item grant), the not-game-specific
// sentinel, or free text (profile claims). Modeling the alternatives
// explicitly means consumers never have to try-parse a raw string.
type ClaimValue struct {
	kind valueKind
	game games.GameType
	id   uuid.UUID
	text string
}

// GameValue builds a game-scoped claim value.
func GameValue(g games.GameType) ClaimValue { return ClaimValue{kind: kindGame, game: g} }

// ResourceValue builds a single-item claim value.
func ResourceValue(id uuid.UUID) ClaimValue { return ClaimValue{kind: kindResource, id: id} }

// Sentinel builds the not-game-specific marker value.
func Sentinel() ClaimValue { return ClaimValue{kind: kindSentinel} }

// TextValue builds a free-text value for profile claims.
func TextValue(s string) ClaimValue { return ClaimValue{kind: kindText, text: s} }

// ParseValue resolves a stored claim value string back to its typed form.
// Recognized game names parse as game values, valid UUIDs as resource ids,
// the sentinel marker as the sentinel; anything else is text.
func ParseValue(s string) ClaimValue {
	if s == sentinelMarker {
		return Sentinel()
	}
	if g, ok := games.Parse(s); ok {
		return GameValue(g)
	}
	if id, err := uuid.Parse(s); err == nil {
		return ResourceValue(id)
	}
	return TextValue(s)
}

// Game returns the game type and true when the value is a game-wide grant.
func (v ClaimValue) Game() (games.GameType, bool) { return v.game, v.kind == kindGame }

// Resource returns the resource id and true when the value is an item grant.
func (v ClaimValue) Resource() (uuid.UUID, bool) { return v.id, v.kind == kindResource }

// IsSentinel reports whether the value is the not-game-specific marker.
func (v ClaimValue) IsSentinel() bool { return v.kind == kindSentinel }

// String returns the stored form of the value.
func (v ClaimValue) String() string {
	switch v.kind {
	case kindGame:
		return string(v.game)
	case kindResource:
		return v.id.String()
	case kindSentinel:
		return sentinelMarker
	default:
		return v.text
	}
}

// Claim is a typed permission or profile grant. Ownership is tracked by the
// store, not the value pair; a (Type, Value) pair is unique per owner.
type Claim struct {
	Type  ClaimType
	Value ClaimValue
}

// MatchesGame reports whether the claim grants something for the given game.
// SeniorAdmin claims match every game.
func (c Claim) MatchesGame(g games.GameType) bool {
	if c.Type == TypeSeniorAdmin {
		return true
	}
	cg, ok := c.Value.Game()
	return ok && cg == g
}

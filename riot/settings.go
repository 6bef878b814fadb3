package riot

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	DefaultAPIDomain    = "api.pvp.net"
	DefaultGlobalHost   = "global.api.pvp.net"
	DefaultStatusHost   = "status.leagueoflegends.com"
	DefaultAssetBaseURL = "http://ddragon.leagueoflegends.com/cdn"
	DefaultAssetVersion = "6.5.1"
)

// Resource families understood by the router.
const (
	FamilyChampion        = "champion"
	FamilyChampionMastery = "championmastery"
	FamilyCurrentGame     = "current-game"
	FamilyFeaturedGames   = "featured-games"
	FamilyGame            = "game"
	FamilyLeague          = "league"
	FamilyStaticData      = "lol-static-data"
	FamilyStatus          = "lol-status"
	FamilyMatch           = "match"
	FamilyMatchList       = "matchlist"
	FamilyStats           = "stats"
	FamilySummoner        = "summoner"
	FamilyTeam            = "team"
)

var ErrAPIKeyRequired = errors.New("riot api key is required")

// Settings is the configuration a Client is built from. NewClient copies it,
// so later changes to the caller's value have no effect on the client.
type Settings struct {
	APIKey string
	Region string

	// Versions maps a resource family to its API revision. Families absent
	// from the table are rejected by the router.
	Versions map[string]string
	// Platforms maps a region code to the platform code used by the
	// location-keyed and observer namespaces.
	Platforms map[string]string

	AssetVersion string
	AssetBaseURL string

	APIDomain  string
	GlobalHost string
	StatusHost string
}

func DefaultVersions() map[string]string {
	return map[string]string{
		FamilyChampion:        "v1.2",
		FamilyChampionMastery: "",
		FamilyCurrentGame:     "v1.0",
		FamilyFeaturedGames:   "v1.0",
		FamilyGame:            "v1.3",
		FamilyLeague:          "v2.5",
		FamilyStaticData:      "v1.2",
		FamilyStatus:          "v1.0",
		FamilyMatch:           "v2.2",
		FamilyMatchList:       "v2.2",
		FamilyStats:           "v1.3",
		FamilySummoner:        "v1.4",
		FamilyTeam:            "v2.4",
	}
}

func DefaultPlatforms() map[string]string {
	return map[string]string{
		"na":   "NA1",
		"tr":   "TR1",
		"eune": "EUN1",
		"euw":  "EUW1",
		"lan":  "LA1",
		"las":  "LA2",
		"oce":  "OC1",
		"br":   "BR1",
		"ru":   "RU",
		"kr":   "KR",
	}
}

// Regions returns the region codes of the default platform table in sorted order.
func Regions() []string {
	return slices.Sorted(maps.Keys(DefaultPlatforms()))
}

func NormalizeRegion(region string) string {
	region = strings.ToLower(strings.TrimSpace(region))
	if _, ok := DefaultPlatforms()[region]; ok {
		return region
	}
	return ""
}

func DefaultSettings(apiKey, region string) Settings {
	return Settings{
		APIKey:       apiKey,
		Region:       region,
		Versions:     DefaultVersions(),
		Platforms:    DefaultPlatforms(),
		AssetVersion: DefaultAssetVersion,
		AssetBaseURL: DefaultAssetBaseURL,
		APIDomain:    DefaultAPIDomain,
		GlobalHost:   DefaultGlobalHost,
		StatusHost:   DefaultStatusHost,
	}
}

// normalized fills empty fields with defaults and detaches the maps from the caller.
func (s Settings) normalized() (Settings, error) {
	s.APIKey = strings.TrimSpace(s.APIKey)
	if s.APIKey == "" {
		return Settings{}, ErrAPIKeyRequired
	}
	if s.Versions == nil {
		s.Versions = DefaultVersions()
	}
	if s.Platforms == nil {
		s.Platforms = DefaultPlatforms()
	}
	s.Versions = maps.Clone(s.Versions)
	s.Platforms = maps.Clone(s.Platforms)

	s.Region = strings.ToLower(strings.TrimSpace(s.Region))
	if _, ok := s.Platforms[s.Region]; !ok {
		return Settings{}, &UnknownRegionError{Region: s.Region}
	}

	s.AssetVersion = cmpOr(s.AssetVersion, DefaultAssetVersion)
	s.AssetBaseURL = strings.TrimRight(cmpOr(s.AssetBaseURL, DefaultAssetBaseURL), "/")
	s.APIDomain = cmpOr(s.APIDomain, DefaultAPIDomain)
	s.GlobalHost = cmpOr(s.GlobalHost, DefaultGlobalHost)
	s.StatusHost = cmpOr(s.StatusHost, DefaultStatusHost)
	return s, nil
}

func cmpOr(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}

func (s Settings) String() string {
	return fmt.Sprintf("riot.Settings{Region: %q, AssetVersion: %q, APIDomain: %q}", s.Region, s.AssetVersion, s.APIDomain)
}

package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Player is a summoner returned by the summoner family. Every navigation
// method performs a new request against the player's Region; nothing is
// cached.
type Player struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ProfileIconID int    `json:"profileIconId"`
	Level         int64  `json:"summonerLevel"`
	RevisionDate  int64  `json:"revisionDate"`

	// Region the player was looked up in. Navigation routes there.
	Region string `json:"-"`

	raw    json.RawMessage
	client *Client
}

func newPlayer(client *Client, raw json.RawMessage, region string) (*Player, error) {
	player := &Player{}
	if err := json.Unmarshal(raw, player); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	player.Region = region
	player.raw = raw
	player.client = client
	return player, nil
}

func (p *Player) Raw() json.RawMessage {
	return p.raw
}

func (p *Player) ProfileIconURL() string {
	return p.client.ProfileIconURL(p.ProfileIconID)
}

func (p *Player) ChampionMasteryList(ctx context.Context) (json.RawMessage, error) {
	return p.client.playerChampionMasteryList(ctx, p.Region, p.ID)
}

func (p *Player) ChampionMastery(ctx context.Context, championID int) (json.RawMessage, error) {
	return p.client.playerChampionMastery(ctx, p.Region, p.ID, championID)
}

func (p *Player) ChampionMasteryScore(ctx context.Context) (json.RawMessage, error) {
	return p.client.playerChampionMasteryScore(ctx, p.Region, p.ID)
}

func (p *Player) ChampionMasteryTop(ctx context.Context, count int) (json.RawMessage, error) {
	return p.client.playerChampionMasteryTopChampions(ctx, p.Region, p.ID, count)
}

func (p *Player) CurrentGame(ctx context.Context) (json.RawMessage, error) {
	return p.client.playerCurrentGame(ctx, p.Region, p.ID)
}

func (p *Player) RecentGames(ctx context.Context) (json.RawMessage, error) {
	return p.client.playerRecentGames(ctx, p.Region, p.ID)
}

func (p *Player) League(ctx context.Context) (json.RawMessage, error) {
	return p.client.playerLeague(ctx, p.Region, p.ID)
}

func (p *Player) LeagueEntry(ctx context.Context) (json.RawMessage, error) {
	return p.client.playerLeagueEntry(ctx, p.Region, p.ID)
}

func (p *Player) RecentMatches(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return p.client.playerRecentMatches(ctx, p.Region, p.ID, params)
}

func (p *Player) RankedStats(ctx context.Context, season string) (json.RawMessage, error) {
	return p.client.playerRankedStats(ctx, p.Region, p.ID, season)
}

func (p *Player) Stats(ctx context.Context, season string) (json.RawMessage, error) {
	return p.client.playerStats(ctx, p.Region, p.ID, season)
}

func (p *Player) MasteryPages(ctx context.Context) (json.RawMessage, error) {
	return p.client.playerMasteryPages(ctx, p.Region, p.ID)
}

func (p *Player) RunePages(ctx context.Context) (json.RawMessage, error) {
	return p.client.playerRunePages(ctx, p.Region, p.ID)
}

func (p *Player) Teams(ctx context.Context) (json.RawMessage, error) {
	return p.client.playerTeams(ctx, p.Region, p.ID)
}

package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const defaultSeason = "SEASON2016"

func (c *Client) PlayerByName(ctx context.Context, name, region string) (*Player, error) {
	name, err := requireNonEmpty("player name", name)
	if err != nil {
		return nil, err
	}
	return c.singlePlayer(ctx, region, "by-name", name)
}

// PlayersByName looks up every name with a single request.
func (c *Client) PlayersByName(ctx context.Context, names []string, region string) ([]*Player, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("player names are required")
	}
	return c.playerList(ctx, region, "by-name", strings.Join(names, ","))
}

func (c *Client) Player(ctx context.Context, playerID int64, region string) (*Player, error) {
	return c.singlePlayer(ctx, region, formatID(playerID))
}

// Players looks up every id with a single request.
func (c *Client) Players(ctx context.Context, playerIDs []int64, region string) ([]*Player, error) {
	if len(playerIDs) == 0 {
		return nil, fmt.Errorf("player ids are required")
	}
	return c.playerList(ctx, region, joinIDs(playerIDs))
}

func (c *Client) PlayerMasteryPages(ctx context.Context, playerID int64) (json.RawMessage, error) {
	return c.playerMasteryPages(ctx, "", playerID)
}

func (c *Client) PlayerName(ctx context.Context, playerID int64) (json.RawMessage, error) {
	return c.get(ctx, FamilySummoner, formatID(playerID), "name")
}

func (c *Client) PlayerRunePages(ctx context.Context, playerID int64) (json.RawMessage, error) {
	return c.playerRunePages(ctx, "", playerID)
}

// PlayerRankedStats uses SEASON2016 when season is empty.
func (c *Client) PlayerRankedStats(ctx context.Context, playerID int64, season string) (json.RawMessage, error) {
	return c.playerRankedStats(ctx, "", playerID, season)
}

func (c *Client) PlayerStats(ctx context.Context, playerID int64, season string) (json.RawMessage, error) {
	return c.playerStats(ctx, "", playerID, season)
}

func (c *Client) PlayerTeams(ctx context.Context, playerID int64) (json.RawMessage, error) {
	return c.playerTeams(ctx, "", playerID)
}

func (c *Client) Team(ctx context.Context, teamID string) (json.RawMessage, error) {
	teamID, err := requireNonEmpty("team id", teamID)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, FamilyTeam, teamID)
}

func (c *Client) playerMasteryPages(ctx context.Context, region string, playerID int64) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilySummoner, nil, formatID(playerID), "masteries")
}

func (c *Client) playerRunePages(ctx context.Context, region string, playerID int64) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilySummoner, nil, formatID(playerID), "runes")
}

func (c *Client) playerRankedStats(ctx context.Context, region string, playerID int64, season string) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilyStats, seasonParams(season), "by-summoner", formatID(playerID), "ranked")
}

func (c *Client) playerStats(ctx context.Context, region string, playerID int64, season string) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilyStats, seasonParams(season), "by-summoner", formatID(playerID), "summary")
}

func (c *Client) playerTeams(ctx context.Context, region string, playerID int64) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilyTeam, nil, "by-summoner", formatID(playerID))
}

func seasonParams(season string) url.Values {
	if season = strings.TrimSpace(season); season == "" {
		season = defaultSeason
	}
	return url.Values{"season": {season}}
}

func (c *Client) singlePlayer(ctx context.Context, region string, segments ...string) (*Player, error) {
	raw, err := c.Raw(ctx, FamilySummoner, segments, region, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch player: %w", err)
	}
	value, err := firstKeyed(raw)
	if err != nil {
		return nil, fmt.Errorf("fetch player: %w", err)
	}
	return newPlayer(c, value, c.lookupRegion(region))
}

func (c *Client) playerList(ctx context.Context, region string, segments ...string) ([]*Player, error) {
	raw, err := c.Raw(ctx, FamilySummoner, segments, region, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}
	values, err := decodeKeyed(raw)
	if err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}

	region = c.lookupRegion(region)
	players := make([]*Player, 0, len(values))
	for _, value := range values {
		player, err := newPlayer(c, value, region)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

func (c *Client) lookupRegion(region string) string {
	if region = strings.ToLower(strings.TrimSpace(region)); region != "" {
		return region
	}
	return c.router.settings.Region
}

package riot

import (
	"context"
	"encoding/json"
	"net/url"
)

func (c *Client) PlayerLeague(ctx context.Context, playerID int64) (json.RawMessage, error) {
	return c.playerLeague(ctx, "", playerID)
}

func (c *Client) PlayerLeagueEntry(ctx context.Context, playerID int64) (json.RawMessage, error) {
	return c.playerLeagueEntry(ctx, "", playerID)
}

func (c *Client) playerLeague(ctx context.Context, region string, playerID int64) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilyLeague, nil, "by-summoner", formatID(playerID))
}

func (c *Client) playerLeagueEntry(ctx context.Context, region string, playerID int64) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilyLeague, nil, "by-summoner", formatID(playerID), "entry")
}

func (c *Client) TeamLeague(ctx context.Context, teamID string) (json.RawMessage, error) {
	teamID, err := requireNonEmpty("team id", teamID)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, FamilyLeague, "by-team", teamID)
}

func (c *Client) TeamLeagueEntry(ctx context.Context, teamID string) (json.RawMessage, error) {
	teamID, err := requireNonEmpty("team id", teamID)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, FamilyLeague, "by-team", teamID, "entry")
}

// LeagueChallenger fetches the challenger tier. An empty queue type is left
// out of the query.
func (c *Client) LeagueChallenger(ctx context.Context, queueType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyLeague, url.Values{"type": {queueType}}, "challenger")
}

func (c *Client) LeagueMaster(ctx context.Context, queueType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyLeague, url.Values{"type": {queueType}}, "master")
}

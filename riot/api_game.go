package riot

import (
	"context"
	"encoding/json"
	"net/url"
)

func (c *Client) PlayerCurrentGame(ctx context.Context, playerID int64) (json.RawMessage, error) {
	return c.playerCurrentGame(ctx, "", playerID)
}

// playerCurrentGame names the platform twice: once in the observer prefix
// and once in the path, both taken from region.
func (c *Client) playerCurrentGame(ctx context.Context, region string, playerID int64) (json.RawMessage, error) {
	region = c.lookupRegion(region)
	platform := c.router.settings.Platforms[region]
	return c.getIn(ctx, region, FamilyCurrentGame, nil, "consumer", "getSpectatorGameInfo", platform, formatID(playerID))
}

func (c *Client) FeaturedGames(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, FamilyFeaturedGames, "featured")
}

func (c *Client) PlayerRecentGames(ctx context.Context, playerID int64) (json.RawMessage, error) {
	return c.playerRecentGames(ctx, "", playerID)
}

func (c *Client) playerRecentGames(ctx context.Context, region string, playerID int64) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilyGame, nil, "by-summoner", formatID(playerID), "recent")
}

// Match always asks for the timeline.
func (c *Client) Match(ctx context.Context, matchID int64) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyMatch, url.Values{"includeTimeline": {"true"}}, formatID(matchID))
}

// PlayerRecentMatches lists matches for a player. params carries the optional
// matchlist filters (championIds, rankedQueues, seasons, beginIndex, ...).
func (c *Client) PlayerRecentMatches(ctx context.Context, playerID int64, params url.Values) (json.RawMessage, error) {
	return c.playerRecentMatches(ctx, "", playerID, params)
}

func (c *Client) playerRecentMatches(ctx context.Context, region string, playerID int64, params url.Values) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilyMatchList, params, "by-summoner", formatID(playerID))
}

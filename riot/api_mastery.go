package riot

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

const defaultTopChampionCount = 3

func (c *Client) PlayerChampionMasteryList(ctx context.Context, playerID int64) (json.RawMessage, error) {
	return c.playerChampionMasteryList(ctx, "", playerID)
}

func (c *Client) PlayerChampionMastery(ctx context.Context, playerID int64, championID int) (json.RawMessage, error) {
	return c.playerChampionMastery(ctx, "", playerID, championID)
}

func (c *Client) PlayerChampionMasteryScore(ctx context.Context, playerID int64) (json.RawMessage, error) {
	return c.playerChampionMasteryScore(ctx, "", playerID)
}

// PlayerChampionMasteryTopChampions returns the player's highest mastery
// champions. A count of zero or less asks for three.
func (c *Client) PlayerChampionMasteryTopChampions(ctx context.Context, playerID int64, count int) (json.RawMessage, error) {
	return c.playerChampionMasteryTopChampions(ctx, "", playerID, count)
}

func (c *Client) playerChampionMasteryList(ctx context.Context, region string, playerID int64) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilyChampionMastery, nil, "player", formatID(playerID), "champions")
}

func (c *Client) playerChampionMastery(ctx context.Context, region string, playerID int64, championID int) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilyChampionMastery, nil, "player", formatID(playerID), "champion", strconv.Itoa(championID))
}

func (c *Client) playerChampionMasteryScore(ctx context.Context, region string, playerID int64) (json.RawMessage, error) {
	return c.getIn(ctx, region, FamilyChampionMastery, nil, "player", formatID(playerID), "score")
}

func (c *Client) playerChampionMasteryTopChampions(ctx context.Context, region string, playerID int64, count int) (json.RawMessage, error) {
	if count <= 0 {
		count = defaultTopChampionCount
	}
	params := url.Values{"count": {strconv.Itoa(count)}}
	return c.getIn(ctx, region, FamilyChampionMastery, params, "player", formatID(playerID), "topchampions")
}

package riot

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// DataAll asks static data endpoints for every optional field.
const DataAll = "all"

func staticParams(name, dataType string) url.Values {
	if dataType == "" {
		dataType = DataAll
	}
	return url.Values{name: {dataType}}
}

func (c *Client) ChampionDataAll(ctx context.Context, dataType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyStaticData, staticParams("champData", dataType), "champion")
}

func (c *Client) ChampionData(ctx context.Context, championID int, dataType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyStaticData, staticParams("champData", dataType), "champion", strconv.Itoa(championID))
}

func (c *Client) ItemDataAll(ctx context.Context, dataType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyStaticData, staticParams("itemData", dataType), "item")
}

func (c *Client) ItemData(ctx context.Context, itemID int, dataType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyStaticData, staticParams("itemData", dataType), "item", strconv.Itoa(itemID))
}

func (c *Client) MapData(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, FamilyStaticData, "map")
}

func (c *Client) MasteryDataAll(ctx context.Context, dataType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyStaticData, staticParams("masteryListData", dataType), "mastery")
}

func (c *Client) MasteryData(ctx context.Context, masteryID int, dataType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyStaticData, staticParams("masteryListData", dataType), "mastery", strconv.Itoa(masteryID))
}

func (c *Client) RuneDataAll(ctx context.Context, dataType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyStaticData, staticParams("runeData", dataType), "rune")
}

func (c *Client) RuneData(ctx context.Context, runeID int, dataType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyStaticData, staticParams("runeData", dataType), "rune", strconv.Itoa(runeID))
}

func (c *Client) SummonerSpellDataAll(ctx context.Context, dataType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyStaticData, staticParams("summonerSpellData", dataType), "summoner-spell")
}

func (c *Client) SummonerSpellData(ctx context.Context, spellID int, dataType string) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyStaticData, staticParams("summonerSpellData", dataType), "summoner-spell", strconv.Itoa(spellID))
}

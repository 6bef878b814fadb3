package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

type ChampionNotFoundError struct {
	Name string
}

func (e *ChampionNotFoundError) Error() string {
	return fmt.Sprintf("champion %q not found", e.Name)
}

func (c *Client) ChampionList(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, FamilyChampion, "champion")
}

func (c *Client) ChampionInfo(ctx context.Context, championID int) (json.RawMessage, error) {
	return c.get(ctx, FamilyChampion, "champion", strconv.Itoa(championID))
}

func (c *Client) ChampionsFreeList(ctx context.Context) (json.RawMessage, error) {
	return c.getWith(ctx, FamilyChampion, url.Values{"freeToPlay": {"true"}}, "champion")
}

// Champions lists every champion from static data, in payload order.
func (c *Client) Champions(ctx context.Context) ([]*Champion, error) {
	raw, err := c.get(ctx, FamilyStaticData, "champion")
	if err != nil {
		return nil, fmt.Errorf("fetch champions: %w", err)
	}
	data, err := field(raw, "data")
	if err != nil {
		return nil, err
	}
	values, err := decodeKeyed(data)
	if err != nil {
		return nil, err
	}

	champions := make([]*Champion, 0, len(values))
	for _, value := range values {
		champion, err := newChampion(c, value)
		if err != nil {
			return nil, err
		}
		champions = append(champions, champion)
	}
	return champions, nil
}

// ChampionByName finds a champion by key or display name. Matching ignores
// case, spaces, apostrophes and dots, so "lee sin" finds "LeeSin".
func (c *Client) ChampionByName(ctx context.Context, name string) (*Champion, error) {
	name, err := requireNonEmpty("champion name", name)
	if err != nil {
		return nil, err
	}
	champions, err := c.Champions(ctx)
	if err != nil {
		return nil, err
	}
	want := championNameKey(name)
	for _, champion := range champions {
		if championNameKey(champion.Key) == want || championNameKey(champion.Name) == want {
			return champion, nil
		}
	}
	return nil, &ChampionNotFoundError{Name: name}
}

func championNameKey(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\'' || r == '.' {
			return -1
		}
		return r
	}, name)
	return cases.Fold().String(name)
}

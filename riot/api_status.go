package riot

import (
	"context"
	"encoding/json"
)

func (c *Client) StatusAll(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, FamilyStatus, "shards")
}

func (c *Client) StatusRegion(ctx context.Context, region string) (json.RawMessage, error) {
	region, err := requireNonEmpty("status region", region)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, FamilyStatus, "shards", region)
}

package riot

import (
	"context"
	"fmt"
	"net/url"
)

// Asset URLs point at Data Dragon. Versioned paths use the client's asset
// version; splash and loading art are unversioned.

func (c *Client) ProfileIconURL(iconID int) string {
	return fmt.Sprintf("%s/%s/img/profileicon/%d.png", c.assetBase(), c.AssetVersion(), iconID)
}

func (c *Client) ChampionSquareURL(championKey string) string {
	return fmt.Sprintf("%s/%s/img/champion/%s.png", c.assetBase(), c.AssetVersion(), url.PathEscape(championKey))
}

func (c *Client) ChampionSplashURL(championKey string, skinNum int) string {
	return fmt.Sprintf("%s/img/champion/splash/%s_%d.jpg", c.assetBase(), url.PathEscape(championKey), skinNum)
}

func (c *Client) ChampionLoadingScreenURL(championKey string, skinNum int) string {
	return fmt.Sprintf("%s/img/champion/loading/%s_%d.jpg", c.assetBase(), url.PathEscape(championKey), skinNum)
}

func (c *Client) PassiveImageURL(file string) string {
	return fmt.Sprintf("%s/%s/img/passive/%s", c.assetBase(), c.AssetVersion(), file)
}

func (c *Client) SpellImageURL(file string) string {
	return fmt.Sprintf("%s/%s/img/spell/%s", c.assetBase(), c.AssetVersion(), file)
}

func (c *Client) assetBase() string {
	return c.router.settings.AssetBaseURL
}

const ddragonVersionsURL = "https://ddragon.leagueoflegends.com/api/versions.json"

// FetchLatestAssetVersion returns the newest Data Dragon version tag, for use
// as Settings.AssetVersion.
func FetchLatestAssetVersion(ctx context.Context, doer Doer) (string, error) {
	return fetchLatestAssetVersion(ctx, doer, ddragonVersionsURL)
}

func fetchLatestAssetVersion(ctx context.Context, doer Doer, endpoint string) (string, error) {
	if doer == nil {
		doer = defaultHTTPClient()
	}
	versions, err := fetch[[]string](ctx, doer, endpoint)
	if err != nil {
		return "", fmt.Errorf("fetch asset versions: %w", err)
	}
	if len(versions) == 0 || versions[0] == "" {
		return "", fmt.Errorf("no asset versions found")
	}
	return versions[0], nil
}

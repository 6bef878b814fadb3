package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	uuid "github.com/satori/go.uuid"

	"github.com/bingbr/bard/riot"
)

const (
	discordTokenPattern = `^[\w-]{23,28}\.[\w-]{6,7}\.[\w-]{27,}$`
	assetVersionPattern = `^(latest|\d+\.\d+\.\d+)$`

	canonicalUUIDLen    = 36
	defaultRateLimitCfg = "config.toml"
	defaultRegion       = "na"

	// LatestAssetVersion asks the app to resolve the newest Data Dragon version at startup.
	LatestAssetVersion = "latest"
)

var (
	discordTokenRegex = regexp.MustCompile(discordTokenPattern)
	assetVersionRegex = regexp.MustCompile(assetVersionPattern)
)

type Config struct {
	DiscordToken string
	GuildID      string
	IsDev        bool
	DatabaseURL  string
	RiotAPIKey   string
	RiotRegion   string
	AssetVersion string
	RateLimitCfg string
	LogLevel     slog.Level
}

func Parse() (Config, error) {
	token := strings.TrimSpace(os.Getenv("DISCORD_TOKEN"))
	if token == "" {
		return Config{}, fmt.Errorf("DISCORD_TOKEN is not set")
	}
	if err := validateDiscordToken(token); err != nil {
		return Config{}, err
	}
	env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	isDev := env == "dev"

	guildID := ""
	if isDev {
		guildID = strings.TrimSpace(os.Getenv("DISCORD_GUILD_ID"))
		if guildID == "" {
			return Config{}, fmt.Errorf("DISCORD_GUILD_ID is required in development mode")
		}
	}

	riotAPIKey := strings.TrimSpace(os.Getenv("RIOT_API_KEY"))
	if riotAPIKey == "" {
		return Config{}, fmt.Errorf("RIOT_API_KEY is not set")
	}
	if err := validateRiotAPIKey(riotAPIKey); err != nil {
		return Config{}, err
	}

	region, err := parseRegion(os.Getenv("RIOT_REGION"))
	if err != nil {
		return Config{}, err
	}

	assetVersion := strings.ToLower(strings.TrimSpace(os.Getenv("DDRAGON_VERSION")))
	if assetVersion != "" && !assetVersionRegex.MatchString(assetVersion) {
		return Config{}, fmt.Errorf("DDRAGON_VERSION %q must be %q or a version like 6.5.1", assetVersion, LatestAssetVersion)
	}

	rateLimitCfg := strings.TrimSpace(os.Getenv("RIOT_RATE_LIMIT_CONFIG"))
	if rateLimitCfg == "" {
		rateLimitCfg = defaultRateLimitCfg
	}

	return Config{
		DiscordToken: token,
		GuildID:      guildID,
		IsDev:        isDev,
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RiotAPIKey:   riotAPIKey,
		RiotRegion:   region,
		AssetVersion: assetVersion,
		RateLimitCfg: rateLimitCfg,
		LogLevel:     inferLogLevel(env),
	}, nil
}

func parseRegion(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return defaultRegion, nil
	}
	if region := riot.NormalizeRegion(raw); region != "" {
		return region, nil
	}
	return "", fmt.Errorf("RIOT_REGION %q is not one of %s", raw, strings.Join(riot.Regions(), ", "))
}

func inferLogLevel(appEnv string) slog.Level {
	if appEnv == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func validateDiscordToken(token string) error {
	if !discordTokenRegex.MatchString(token) {
		return fmt.Errorf("DISCORD_TOKEN format is invalid")
	}
	return nil
}

// Legacy keys are bare UUIDs; newer ones carry the RGAPI- prefix.
func validateRiotAPIKey(key string) error {
	key = strings.TrimPrefix(key, "RGAPI-")
	if len(key) != canonicalUUIDLen {
		return fmt.Errorf("RIOT_API_KEY format is invalid")
	}
	if _, err := uuid.FromString(key); err != nil {
		return fmt.Errorf("RIOT_API_KEY format is invalid")
	}
	return nil
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bingbr/bard/internal/discord"
	"github.com/bingbr/bard/riot"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"
)

const (
	playerTimeout     = 15 * time.Second
	playerEmbedColor  = 0x2b2b2b
	topChampionsCount = 3
)

var PlayerCommand = newCommand("player", "View a summoner's level and best champions.", handlePlayer,
	discord.SummonerNameOption,
	discord.RegionOption(false),
)

type masteryEntry struct {
	ChampionID     int   `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int64 `json:"championPoints"`
}

type playerSummary struct {
	player   *riot.Player
	iconURL  string
	score    int64
	top      []masteryEntry
	champion map[int]string
}

func handlePlayer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	rt := currentRuntime()
	if !discord.RequireCommandConfigured(s, i, rt.Client != nil) {
		return
	}

	name := discord.OptionString(i, "name")
	region := discord.OptionString(i, "region")
	if name == "" {
		discord.RespondWithError(s, i, "The summoner name is required.")
		return
	}

	if err := discord.RunDeferredEmbedCommand(s, i, playerTimeout, func(ctx context.Context) ([]*discordgo.MessageEmbed, error) {
		summary, err := loadPlayerSummary(ctx, rt.Client, name, region)
		if err != nil {
			return nil, err
		}
		embed := buildPlayerEmbed(summary)
		discord.ApplyDefaultFooter(embed)
		return []*discordgo.MessageEmbed{embed}, nil
	}, func(err error) string {
		return mapDeferredError(err, name)
	}); err != nil {
		slog.Error("Failed to handle deferred player interaction", "error", err)
	}
}

func loadPlayerSummary(ctx context.Context, client *riot.Client, name, region string) (playerSummary, error) {
	player, err := client.PlayerByName(ctx, name, region)
	if err != nil {
		return playerSummary{}, fmt.Errorf("failed to fetch player: %w", err)
	}

	summary := playerSummary{player: player, iconURL: player.ProfileIconURL()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := player.ChampionMasteryScore(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch mastery score: %w", err)
		}
		summary.score, err = strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			return fmt.Errorf("decode mastery score: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		raw, err := player.ChampionMasteryTop(gctx, topChampionsCount)
		if err != nil {
			return fmt.Errorf("failed to fetch top champions: %w", err)
		}
		if err := json.Unmarshal(raw, &summary.top); err != nil {
			return fmt.Errorf("decode top champions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		names, err := championNames(gctx, client)
		if err != nil {
			// Names are cosmetic; fall back to IDs.
			slog.Warn("Failed to load champion names", "error", err)
			return nil
		}
		summary.champion = names
		return nil
	})
	if err := g.Wait(); err != nil {
		return playerSummary{}, err
	}
	return summary, nil
}

func championNames(ctx context.Context, client *riot.Client) (map[int]string, error) {
	champions, err := client.Champions(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(champions))
	for _, champion := range champions {
		names[champion.ID] = champion.Name
	}
	return names, nil
}

func buildPlayerEmbed(summary playerSummary) *discordgo.MessageEmbed {
	player := summary.player
	lastSeen := "Unknown"
	if player.RevisionDate > 0 {
		lastSeen = fmt.Sprintf("<t:%d:R>", player.RevisionDate/1000)
	}

	return &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{Name: "About Summoner"},
		Title:  player.Name,
		Description: numbers.Sprintf("**Region**: %s **Level**: %d\n**Last seen**: %s",
			strings.ToUpper(player.Region), player.Level, lastSeen),
		Color:     playerEmbedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: summary.iconURL},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Mastery Score", Value: numbers.Sprintf("%d", summary.score), Inline: true},
			{Name: "Top Champions", Value: topChampionLines(summary.top, summary.champion), Inline: true},
		},
	}
}

func topChampionLines(entries []masteryEntry, names map[int]string) string {
	if len(entries) == 0 {
		return "No champion mastery yet."
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		name, ok := names[entry.ChampionID]
		if !ok {
			name = fmt.Sprintf("ID %d", entry.ChampionID)
		}
		lines = append(lines, numbers.Sprintf("%s: level %d, %d points", name, entry.ChampionLevel, entry.ChampionPoints))
	}
	return truncate(strings.Join(lines, "\n"), maxFieldValue)
}

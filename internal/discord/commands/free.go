package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/bingbr/bard/internal/discord"
	"github.com/bingbr/bard/riot"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"
)

const (
	freeTimeout    = 15 * time.Second
	freeEmbedColor = 0x54fafa
)

var FreeCommand = newCommand("free", "View the free champion rotation.", handleFree)

type freeChampion struct {
	ID         int  `json:"id"`
	FreeToPlay bool `json:"freeToPlay"`
}

func handleFree(s *discordgo.Session, i *discordgo.InteractionCreate) {
	rt := currentRuntime()
	if !discord.RequireCommandConfigured(s, i, rt.Client != nil) {
		return
	}

	if err := discord.RunDeferredEmbedCommand(s, i, freeTimeout, func(ctx context.Context) ([]*discordgo.MessageEmbed, error) {
		ids, names, err := loadFreeRotation(ctx, rt.Client)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch free rotation: %w", err)
		}
		embed := buildFreeEmbed(ids, names)
		discord.ApplyDefaultFooter(embed)
		return []*discordgo.MessageEmbed{embed}, nil
	}, nil); err != nil {
		slog.Error("Failed to handle deferred free interaction", "error", err)
	}
}

func loadFreeRotation(ctx context.Context, client *riot.Client) ([]int, map[int]string, error) {
	var (
		ids   []int
		names map[int]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := client.ChampionsFreeList(gctx)
		if err != nil {
			return err
		}
		ids, err = decodeFreeChampionIDs(raw)
		return err
	})
	g.Go(func() error {
		var err error
		if names, err = championNames(gctx, client); err != nil {
			slog.Warn("Failed to load champion names", "error", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ids, names, nil
}

func decodeFreeChampionIDs(raw json.RawMessage) ([]int, error) {
	var payload struct {
		Champions []freeChampion `json:"champions"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode free champions: %w", err)
	}
	ids := make([]int, 0, len(payload.Champions))
	for _, champion := range payload.Champions {
		if champion.FreeToPlay && !slices.Contains(ids, champion.ID) {
			ids = append(ids, champion.ID)
		}
	}
	return ids, nil
}

func buildFreeEmbed(ids []int, names map[int]string) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok || strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("ID %d", id)
		}
		lines = append(lines, name)
	}
	slices.Sort(lines)

	value := "No champions available at the moment."
	if len(lines) > 0 {
		value = truncate(strings.Join(lines, "\n"), maxFieldValue)
	}
	return &discordgo.MessageEmbed{
		Author:      &discordgo.MessageEmbedAuthor{Name: "Free Champions of the Week"},
		Description: "Champions that can be played without having\nto purchase them with RP or IP.",
		Color:       freeEmbedColor,
		Fields:      []*discordgo.MessageEmbedField{{Name: "Champions", Value: value}},
	}
}

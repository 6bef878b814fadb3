package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bingbr/bard/internal/discord"
	"github.com/bingbr/bard/riot"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	championTimeout       = 20 * time.Second
	championEmbedColor    = 0xc89b3c
	maxSpellDescription   = 300
	maxPassiveDescription = 400
)

var ChampionCommand = newCommand("champion", "View a champion's passive and abilities.", handleChampion,
	discord.ChampionNameOption,
)

type championSummary struct {
	champion *riot.Champion
	tags     []string
	passive  riot.Passive
	spells   []riot.Spell
}

func handleChampion(s *discordgo.Session, i *discordgo.InteractionCreate) {
	rt := currentRuntime()
	if !discord.RequireCommandConfigured(s, i, rt.Client != nil) {
		return
	}

	name := discord.OptionString(i, "name")
	if name == "" {
		discord.RespondWithError(s, i, "The champion name is required.")
		return
	}

	if err := discord.RunDeferredEmbedCommand(s, i, championTimeout, func(ctx context.Context) ([]*discordgo.MessageEmbed, error) {
		summary, err := loadChampionSummary(ctx, rt.Client, name)
		if err != nil {
			return nil, err
		}
		embed := buildChampionEmbed(summary)
		discord.ApplyDefaultFooter(embed)
		return []*discordgo.MessageEmbed{embed}, nil
	}, func(err error) string {
		return mapDeferredError(err, name)
	}); err != nil {
		slog.Error("Failed to handle deferred champion interaction", "error", err)
	}
}

func loadChampionSummary(ctx context.Context, client *riot.Client, name string) (championSummary, error) {
	champion, err := client.ChampionByName(ctx, name)
	if err != nil {
		return championSummary{}, fmt.Errorf("failed to find champion: %w", err)
	}

	summary := championSummary{champion: champion}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.tags, err = champion.Tags(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.passive, err = champion.Passive(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.spells, err = champion.Spells(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return championSummary{}, err
	}
	return summary, nil
}

func buildChampionEmbed(summary championSummary) *discordgo.MessageEmbed {
	champion := summary.champion
	embed := &discordgo.MessageEmbed{
		Author:      &discordgo.MessageEmbedAuthor{Name: "About Champion"},
		Title:       champion.Name,
		Description: cases.Title(language.English).String(champion.Title),
		Color:       championEmbedColor,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: champion.SquareURL()},
		Image:       &discordgo.MessageEmbedImage{URL: champion.SplashURL(0)},
	}
	if len(summary.tags) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Roles",
			Value: strings.Join(summary.tags, ", "),
		})
	}
	if summary.passive.Name != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Passive: " + summary.passive.Name,
			Value: truncate(spellText(summary.passive.SanitizedDescription, summary.passive.Description), maxPassiveDescription),
		})
	}
	for idx, spell := range summary.spells {
		if riot.SpellSlot(idx) > riot.SlotR {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s: %s", riot.SpellSlot(idx), spell.Name),
			Value: truncate(spellText(spell.SanitizedDescription, spell.Description), maxSpellDescription),
		})
	}
	return embed
}

func spellText(sanitized, description string) string {
	if text := strings.TrimSpace(sanitized); text != "" {
		return text
	}
	if text := strings.TrimSpace(description); text != "" {
		return text
	}
	return "No description."
}

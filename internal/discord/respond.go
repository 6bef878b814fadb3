package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

type DeferredEmbedExecutor func(ctx context.Context) ([]*discordgo.MessageEmbed, error)
type DeferredErrorMapper func(err error) string

const (
	CommandNotConfiguredMessage = "The command is not configured."
	defaultErrorMessage         = "Could not connect to Riot servers.\nPlease try again later."
	defaultErrorTitle           = "Oops, something went wrong!"
	footerText                  = "Bard"
	projectURL                  = "https://github.com/bingbr/bard"
	colorError                  = 0xFF0000

	discordErrCodeAlreadyAck, discordErrCodeUnknown = 40060, 10062
)

var (
	interactionRespond = func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
		return s.InteractionRespond(i, resp)
	}
	interactionResponseEdit = func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) (*discordgo.Message, error) {
		return s.InteractionResponseEdit(i, edit)
	}
	interactionResponseDelete = func(s *discordgo.Session, i *discordgo.Interaction) error {
		return s.InteractionResponseDelete(i)
	}
	followupMessageCreate = func(s *discordgo.Session, i *discordgo.Interaction, wait bool, data *discordgo.WebhookParams) (*discordgo.Message, error) {
		return s.FollowupMessageCreate(i, wait, data)
	}
	now = time.Now
)

// RunDeferredEmbedCommand acknowledges the interaction right away, runs exec
// under timeout and replaces the placeholder with its embeds. Errors are sent
// as an ephemeral follow-up built from mapErr.
func RunDeferredEmbedCommand(s *discordgo.Session, i *discordgo.InteractionCreate, timeout time.Duration, exec DeferredEmbedExecutor, mapErr DeferredErrorMapper) error {
	if s == nil {
		return fmt.Errorf("discord session is required")
	}
	if i == nil || i.Interaction == nil {
		return fmt.Errorf("interaction is required")
	}
	if exec == nil {
		return fmt.Errorf("deferred executor is required")
	}

	if err := interactionRespond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		if hasDiscordErrorCode(err, discordErrCodeAlreadyAck) || hasDiscordErrorCode(err, discordErrCodeUnknown) {
			return nil
		}
		return fmt.Errorf("defer interaction: %w", err)
	}

	ctx := context.Background()
	cancel := func() {}
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	embeds, err := exec(ctx)
	if err != nil {
		slog.Error("Deferred command execution failed", "command", i.ApplicationCommandData().Name, "error", err)
		message := defaultErrorMessage
		if mapErr != nil {
			message = mapErr(err)
		}
		return respondDeferredError(s, i, TemplateError(message, defaultErrorTitle))
	}
	_, err = interactionResponseEdit(s, i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds})
	return err
}

// respondDeferredError replaces the public placeholder with an ephemeral
// message; if the follow-up fails the placeholder is edited instead.
func respondDeferredError(s *discordgo.Session, i *discordgo.InteractionCreate, errEmbed *discordgo.MessageEmbed) error {
	_, err := followupMessageCreate(s, i.Interaction, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{errEmbed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		embeds := []*discordgo.MessageEmbed{errEmbed}
		_, err = interactionResponseEdit(s, i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds})
		return err
	}
	if err := interactionResponseDelete(s, i.Interaction); err != nil {
		slog.Warn("Failed to delete deferred interaction response after sending ephemeral error", "error", err)
	}
	return nil
}

func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := interactionRespond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{TemplateError(message, "Error")},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("Failed to respond to interaction", "error", err)
	}
}

func RequireCommandConfigured(s *discordgo.Session, i *discordgo.InteractionCreate, configured bool) bool {
	if configured {
		return true
	}
	RespondWithError(s, i, CommandNotConfiguredMessage)
	return false
}

func hasDiscordErrorCode(err error, code int) bool {
	restErr, ok := errors.AsType[*discordgo.RESTError](err)
	if !ok || restErr == nil || restErr.Message == nil {
		return false
	}
	return restErr.Message.Code == code
}

func ApplyDefaultFooter(embed *discordgo.MessageEmbed) {
	if embed == nil {
		return
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footerText}
	embed.Timestamp = now().UTC().Format(time.RFC3339)
}

func TemplateError(message, title string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Author:      &discordgo.MessageEmbedAuthor{Name: title},
		Description: message,
		Color:       colorError,
		URL:         projectURL,
	}
	ApplyDefaultFooter(embed)
	return embed
}

package commands

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bingbr/bard/internal/discord"
	"github.com/bingbr/bard/riot"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	notFoundFallback = "Could not connect to Riot servers.\nPlease try again later."
	maxFieldValue    = 1024
)

type Runtime struct {
	Client *riot.Client
}

var (
	runtimeMu sync.RWMutex
	runtime   Runtime

	numbers = message.NewPrinter(language.English)
)

func ConfigureRuntime(cfg Runtime) {
	runtimeMu.Lock()
	runtime = cfg
	runtimeMu.Unlock()
}

func currentRuntime() Runtime {
	runtimeMu.RLock()
	defer runtimeMu.RUnlock()
	return runtime
}

// All returns every slash command in registration order.
func All() []*discord.Command {
	return []*discord.Command{PlayerCommand, ChampionCommand, FreeCommand}
}

func newCommand(name, description string, handler discord.CommandHandler, options ...*discordgo.ApplicationCommandOption) *discord.Command {
	return &discord.Command{
		Data: &discordgo.ApplicationCommand{
			Name:        name,
			Description: description,
			IntegrationTypes: &[]discordgo.ApplicationIntegrationType{
				discordgo.ApplicationIntegrationGuildInstall,
				discordgo.ApplicationIntegrationUserInstall,
			},
			Contexts: &[]discordgo.InteractionContextType{
				discordgo.InteractionContextGuild,
				discordgo.InteractionContextBotDM,
				discordgo.InteractionContextPrivateChannel,
			},
			Options: options,
		},
		Handler: handler,
	}
}

// mapDeferredError turns lookup failures into a hint for the user; anything
// else gets the generic connectivity message.
func mapDeferredError(err error, subject string) string {
	if _, ok := errors.AsType[*riot.ChampionNotFoundError](err); ok {
		return fmt.Sprintf("No champion named `%s` was found.", subject)
	}
	if riot.IsNotFound(err) {
		return fmt.Sprintf("No results found for `%s`.\nCheck the name and region and try again.", subject)
	}
	return notFoundFallback
}

// truncate shortens s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	cut := limit - len("...")
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

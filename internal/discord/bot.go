package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bwmarrin/discordgo"
)

const presence = "Bard | /player /champion"

type Command struct {
	Data    *discordgo.ApplicationCommand
	Handler CommandHandler
}

type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate)

// Registry maps slash command names to their handlers, preserving registration order.
type Registry struct {
	commands []*discordgo.ApplicationCommand
	handlers map[string]CommandHandler
}

func NewRegistry(cmds ...*Command) *Registry {
	r := &Registry{handlers: make(map[string]CommandHandler, len(cmds))}
	for _, cmd := range cmds {
		r.Add(cmd)
	}
	return r
}

func (r *Registry) Add(cmd *Command) {
	if r == nil || cmd == nil || cmd.Data == nil || cmd.Handler == nil {
		return
	}
	if r.handlers == nil {
		r.handlers = make(map[string]CommandHandler)
	}
	if _, dup := r.handlers[cmd.Data.Name]; !dup {
		r.commands = append(r.commands, cmd.Data)
	}
	r.handlers[cmd.Data.Name] = cmd.Handler
}

func (r *Registry) Commands() []*discordgo.ApplicationCommand {
	if r == nil {
		return nil
	}
	return slices.Clone(r.commands)
}

func (r *Registry) Handler(name string) (CommandHandler, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r.handlers[name]
	return h, ok
}

type Bot struct {
	session  *discordgo.Session
	registry *Registry
	guildID  string
	isDev    bool
	logger   *slog.Logger
	// bulkOverwriteFn is used by tests to stub Discord command registration.
	bulkOverwriteFn func(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) (createdCommands []*discordgo.ApplicationCommand, err error)
}

type Option func(*Bot)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func WithRegistry(registry *Registry) Option {
	return func(b *Bot) {
		if registry != nil {
			b.registry = registry
		}
	}
}

func NewBot(token, guildID string, isDev bool, opts ...Option) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:         session,
		registry:        NewRegistry(),
		guildID:         guildID,
		isDev:           isDev,
		logger:          slog.Default(),
		bulkOverwriteFn: session.ApplicationCommandBulkOverwrite,
	}
	for _, opt := range opts {
		opt(bot)
	}
	return bot, nil
}

// Run opens the gateway, registers the slash commands and serves interactions
// until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, _ *discordgo.Ready) {
		b.logger.Info("Logged in", "user", s.State.User.Username, "#", s.State.User.Discriminator)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.logger.Error("Failed to close Discord session", "error", err)
		}
	}()

	if b.logger.Enabled(ctx, slog.LevelDebug) {
		b.logCommands("", "global")
		if b.guildID != "" {
			b.logCommands(b.guildID, "guild")
		}
	}

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	if err := b.session.UpdateListeningStatus(presence); err != nil {
		b.logger.Error("Failed to update listening status", "error", err)
	}

	b.session.AddHandler(b.handleInteraction)
	b.logger.Info("---> Press Ctrl+C to exit <---")
	<-ctx.Done()
	b.logger.Info("Shutting down...")
	return nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	username, userID := InteractionUserID(i)
	b.logger.Info("Interaction", "command", name, "username", username, "userID", userID, "guildID", i.GuildID)

	if h, ok := b.registry.Handler(name); ok {
		h(s, i)
		return
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "This command is not yet supported.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func InteractionUserID(i *discordgo.InteractionCreate) (username, userID string) {
	if i == nil {
		return "", ""
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username, i.Member.User.ID
	}
	if i.User != nil {
		return i.User.Username, i.User.ID
	}
	return "", ""
}

// registerCommands keeps a single copy of the command set: the dev guild in
// development, global otherwise.
func (b *Bot) registerCommands() error {
	if b.isDev {
		if b.guildID == "" {
			return fmt.Errorf("guild ID is required to register commands in dev mode")
		}
		if err := b.overwrite("", nil, "global"); err != nil {
			return err
		}
		return b.overwrite(b.guildID, b.registry.Commands(), "guild")
	}

	var errs []error
	for _, guildID := range collectGuildIDs(b.guildID, b.session) {
		errs = append(errs, b.overwrite(guildID, nil, "guild"))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	return b.overwrite("", b.registry.Commands(), "global")
}

func (b *Bot) overwrite(guildID string, commands []*discordgo.ApplicationCommand, scope string) error {
	if commands == nil {
		commands = []*discordgo.ApplicationCommand{}
	}
	created, err := b.bulkOverwrite(guildID, commands)
	if err != nil {
		if len(commands) == 0 {
			return fmt.Errorf("cannot clear %s commands: %w", scope, err)
		}
		return fmt.Errorf("cannot overwrite %s commands: %w", scope, err)
	}
	if len(commands) == 0 {
		b.logger.Debug("Cleared commands", "scope", scope, "guildID", guildID)
		return nil
	}
	b.logger.Info("Registered commands", "scope", scope, "count", len(created))
	return nil
}

func collectGuildIDs(configuredGuildID string, session *discordgo.Session) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, 1)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, exists := seen[id]; !exists {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	add(configuredGuildID)
	if session != nil && session.State != nil {
		session.State.RLock()
		for _, guild := range session.State.Guilds {
			if guild != nil {
				add(guild.ID)
			}
		}
		session.State.RUnlock()
	}
	slices.Sort(ids)
	return ids
}

func (b *Bot) bulkOverwrite(guildID string, commands []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	if b == nil || b.session == nil || b.session.State == nil || b.session.State.User == nil {
		return nil, fmt.Errorf("discord session user is unavailable")
	}
	fn := b.bulkOverwriteFn
	if fn == nil {
		fn = b.session.ApplicationCommandBulkOverwrite
	}
	return fn(b.session.State.User.ID, guildID, commands)
}

func (b *Bot) logCommands(guildID, scope string) {
	cmds, err := b.session.ApplicationCommands(b.session.State.User.ID, guildID)
	if err != nil {
		b.logger.Warn("Failed to fetch commands", "scope", scope, "error", err)
		return
	}
	for _, cmd := range cmds {
		b.logger.Debug("Command", "scope", scope, "name", cmd.Name, "id", cmd.ID, "guildID", guildID)
	}
}

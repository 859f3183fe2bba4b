package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/lexisother/TurnipBeams/internal/command"
	"github.com/lexisother/TurnipBeams/internal/config"
	"github.com/lexisother/TurnipBeams/internal/permission"
	"github.com/lexisother/TurnipBeams/internal/storage"
)

// Bot is the Discord adapter: it owns the session and feeds incoming
// messages into the command tree.
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	storage *storage.Storage
}

// StartBot opens a session and blocks until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage) error {
	b := &Bot{cfg: cfg, storage: store}
	if err := b.run(ctx); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMembers

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, closing Discord session")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("Bot is ready")
}

// onMessageCreate detects the prefix (or a leading bot mention), tokenizes
// the remainder, looks up the head token in the command table and hands the
// rest to the resolution engine. Unknown head tokens are ignored; any error
// the engine returns is user-facing text and is sent back as the reply.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	prefix := b.resolvePrefix(m.GuildID)
	input, ok := stripPrefix(s, m.Content, prefix, m.GuildID == "")
	if !ok {
		return
	}

	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return
	}
	header := strings.ToLower(tokens[0])
	args := tokens[1:]

	named, ok := command.Lookup(header)
	if !ok {
		return
	}

	channel := b.channel(m.ChannelID)

	ctx := &command.CallContext{
		Session:   s,
		Event:     m,
		Storage:   b.storage,
		Author:    m.Author,
		Member:    m.Member,
		GuildID:   m.GuildID,
		Channel:   channel,
		Prefix:    prefix,
		Level:     permission.Resolve(b.cfg, b.storage, s, m.Author, m.Member, m.GuildID),
		LevelName: permission.Name,
		Resolver:  &sessionResolver{s: s},
		Send: func(content string) error {
			_, err := s.ChannelMessageSend(m.ChannelID, content)
			return err
		},
	}

	acc := command.NewAccumulator(header, args)

	if err := named.Node.Execute(args, ctx, acc); err != nil {
		if _, sendErr := s.ChannelMessageSend(m.ChannelID, err.Error()); sendErr != nil {
			log.Error().Err(sendErr).Str("channel", m.ChannelID).Msg("Failed to send error reply")
		}
	}

	if m.GuildID != "" {
		b.logCommand(m, header, args)
	}
}

// resolvePrefix returns the guild's stored prefix, falling back to the
// configured default. DMs always use the default.
func (b *Bot) resolvePrefix(guildID string) string {
	if guildID == "" {
		return b.cfg.Prefix
	}
	prefix, err := b.storage.GetPrefix(guildID)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("Failed to load guild prefix")
		return b.cfg.Prefix
	}
	if prefix == "" {
		return b.cfg.Prefix
	}
	return prefix
}

// stripPrefix removes the command prefix or a leading bot mention from
// content. In DMs bare input is accepted as-is.
func stripPrefix(s *discordgo.Session, content, prefix string, dm bool) (string, bool) {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(content, prefix)), true
	}

	if s.State.User != nil {
		for _, mention := range []string{"<@" + s.State.User.ID + ">", "<@!" + s.State.User.ID + ">"} {
			if strings.HasPrefix(content, mention) {
				return strings.TrimSpace(strings.TrimPrefix(content, mention)), true
			}
		}
	}

	if dm {
		return content, true
	}
	return "", false
}

func (b *Bot) channel(channelID string) *discordgo.Channel {
	channel, err := b.dg.State.Channel(channelID)
	if err != nil {
		channel, err = b.dg.Channel(channelID)
		if err != nil {
			log.Warn().Err(err).Str("channel", channelID).Msg("Failed to fetch channel")
			return nil
		}
	}
	return channel
}

func (b *Bot) logCommand(m *discordgo.MessageCreate, header string, args []string) {
	err := b.storage.AppendCommandToHistory(m.GuildID, storage.CommandHistoryRecord{
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Username:  m.Author.Username,
		Command:   header,
		Args:      strings.Join(args, " "),
		Datetime:  time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("guild", m.GuildID).Msg("Failed to record command history")
	}
}

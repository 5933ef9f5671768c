package bot

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"soundscribe/domain"
	"soundscribe/recorder"
	"soundscribe/repositories"
	"soundscribe/server"
)

// Bot wires the Discord gateway to the recording coordinator and the
// download server. It owns at most one voice connection at a time,
// matching the coordinator's single recording slot.
type Bot struct {
	log         *slog.Logger
	session     *discordgo.Session
	coordinator *recorder.Coordinator
	downloads   *server.DownloadServer
	journal     *repositories.SessionJournal

	joinAttempts int
	joinBackoff  time.Duration

	mu         sync.Mutex
	voice      *discordgo.VoiceConnection
	voiceGuild string
}

func New(
	log *slog.Logger,
	token string,
	coordinator *recorder.Coordinator,
	downloads *server.DownloadServer,
	journal *repositories.SessionJournal,
	joinAttempts int,
	joinBackoff time.Duration,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	b := &Bot{
		log:          log,
		session:      session,
		coordinator:  coordinator,
		downloads:    downloads,
		journal:      journal,
		joinAttempts: joinAttempts,
		joinBackoff:  joinBackoff,
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	session.AddHandler(b.onVoiceStateUpdate)

	return b, nil
}

// Open connects to the gateway. Slash commands are registered from the
// ready handler once the application id is known.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	b.mu.Lock()
	vc := b.voice
	b.voice = nil
	b.voiceGuild = ""
	b.mu.Unlock()

	if vc != nil {
		if err := vc.Disconnect(); err != nil {
			b.log.Warn("Failed to disconnect voice", "error", err)
		}
	}
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("Connected to Discord", "user", r.User.Username)
	b.registerCommands(s)
}

// onVoiceStateUpdate forwards joins and leaves to the coordinator for
// diagnostic logging during an active session.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	if vs == nil || (s.State.User != nil && vs.UserID == s.State.User.ID) {
		return
	}

	wasInChannel := vs.BeforeUpdate != nil && vs.BeforeUpdate.ChannelID != ""
	inChannel := vs.ChannelID != ""

	switch {
	case !wasInChannel && inChannel:
		b.coordinator.RouteVoiceActivity(domain.ParticipantID(vs.UserID), true, time.Now())
	case wasInChannel && !inChannel:
		b.coordinator.RouteVoiceActivity(domain.ParticipantID(vs.UserID), false, time.Now())
	}
}

func (b *Bot) setVoice(guildID string, vc *discordgo.VoiceConnection) {
	b.mu.Lock()
	b.voice = vc
	b.voiceGuild = guildID
	b.mu.Unlock()
}

func (b *Bot) takeVoice() *discordgo.VoiceConnection {
	b.mu.Lock()
	defer b.mu.Unlock()
	vc := b.voice
	b.voice = nil
	b.voiceGuild = ""
	return vc
}

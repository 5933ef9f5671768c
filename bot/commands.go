package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"soundscribe/domain"
	scerrors "soundscribe/errors"
)

// stopTimeout bounds how long a /stop interaction waits for finalize and
// mixing. The ffmpeg invocation carries its own deadline underneath.
const stopTimeout = 10 * time.Minute

const historyLimit = 5

func (b *Bot) registerCommands(s *discordgo.Session) {
	commands := []*discordgo.ApplicationCommand{
		{Name: "join", Description: "Join your voice channel and start recording"},
		{Name: "stop", Description: "Stop recording and get a download link"},
		{Name: "last-recording", Description: "Get a download link for the most recent recording"},
		{Name: "history", Description: "List the most recent recording sessions"},
	}

	for _, cmd := range commands {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, "", cmd); err != nil {
			b.log.Error("Failed to register command", "command", cmd.Name, "error", err)
		}
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "join":
		b.handleJoin(s, i)
	case "stop":
		b.handleStop(s, i)
	case "last-recording":
		b.handleLastRecording(s, i)
	case "history":
		b.handleHistory(s, i)
	}
}

// handleJoin connects to the invoker's voice channel with bounded retries
// and claims the recording slot. A failed attempt never leaves partial
// session state behind, so retrying is always safe.
func (b *Bot) handleJoin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	voiceState, err := s.State.VoiceState(i.GuildID, i.Member.User.ID)
	if err != nil || voiceState == nil || voiceState.ChannelID == "" {
		b.respond(s, i, "You need to be in a voice channel first!")
		return
	}

	if b.coordinator.Recording() {
		b.respond(s, i, "Already recording in another channel!")
		return
	}

	b.respond(s, i, "Connecting to voice channel...")

	var vc *discordgo.VoiceConnection
	for attempt := 1; attempt <= b.joinAttempts; attempt++ {
		vc, err = s.ChannelVoiceJoin(i.GuildID, voiceState.ChannelID, false, false)
		if err == nil {
			break
		}
		b.log.Warn("Voice connection attempt failed",
			"attempt", attempt, "max", b.joinAttempts, "error", err)
		if attempt < b.joinAttempts {
			time.Sleep(b.joinBackoff)
		}
	}
	if err != nil {
		b.followup(s, i, "Voice connection failed after multiple attempts. Try again in a moment.")
		return
	}

	capture := NewVoiceCapture(b.log, vc)
	sessionID, err := b.coordinator.Start(domain.GuildID(i.GuildID), capture)
	if err != nil {
		_ = vc.Disconnect()
		if errors.Is(err, scerrors.ErrAlreadyRecording) {
			b.followup(s, i, "Already recording in another channel!")
			return
		}
		b.log.Error("Failed to start recording", "error", err)
		b.followup(s, i, "Failed to start recording, see bot logs.")
		return
	}

	b.setVoice(i.GuildID, vc)
	b.log.Info("Recording started via command", "session", sessionID, "guild", i.GuildID)
	b.followup(s, i, "Started recording in your voice channel!")
}

func (b *Bot) handleStop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.coordinator.Recording() {
		b.respond(s, i, "Not currently recording!")
		return
	}

	b.respond(s, i, "Stopping recording and processing audio...")

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	artifact, err := b.coordinator.Stop(ctx)

	if vc := b.takeVoice(); vc != nil {
		if dErr := vc.Disconnect(); dErr != nil {
			b.log.Warn("Failed to disconnect voice", "error", dErr)
		}
	}

	if err != nil {
		if errors.Is(err, scerrors.ErrNotRecording) {
			b.followup(s, i, "Not currently recording!")
			return
		}
		b.log.Error("Failed to stop recording", "error", err)
		b.followup(s, i, "Failed to stop recording, see bot logs.")
		return
	}

	if artifact == "" {
		b.followup(s, i, "No audio was recorded!")
		return
	}

	b.replyWithLink(s, i, "Recording complete", artifact)
}

func (b *Bot) handleLastRecording(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latest := b.coordinator.LatestArtifact()
	if latest == "" {
		b.respond(s, i, "No recordings found!")
		return
	}
	b.respond(s, i, "Fetching the latest recording...")
	b.replyWithLink(s, i, "Latest recording", latest)
}

func (b *Bot) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	records, err := b.journal.Recent(historyLimit)
	if err != nil {
		b.log.Error("Failed to read session journal", "error", err)
		b.respond(s, i, "Failed to read recording history.")
		return
	}
	if len(records) == 0 {
		b.respond(s, i, "No recordings found!")
		return
	}

	var sb strings.Builder
	sb.WriteString("Recent recording sessions:\n")
	for _, rec := range records {
		status := "no audio"
		if rec.ArtifactPath != "" {
			status = "recorded"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s, %s, %s)\n",
			rec.ID, rec.StartedAt.Format(time.RFC3339), rec.Duration.Round(time.Second), status))
	}
	b.respond(s, i, sb.String())
}

func (b *Bot) replyWithLink(s *discordgo.Session, i *discordgo.InteractionCreate, title, path string) {
	url, err := b.downloads.CreateLink(path)
	if err != nil {
		b.log.Error("Failed to create download link", "path", path, "error", err)
		b.followup(s, i, "Failed to create a download link, see bot logs.")
		return
	}
	b.followup(s, i, fmt.Sprintf("%s! Download it here (link expires in %s): %s", title, b.downloads.TTL(), url))
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Warn("Failed to respond to interaction", "error", err)
	}
}

func (b *Bot) followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		b.log.Warn("Failed to send follow-up", "error", err)
	}
}

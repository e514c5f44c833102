package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"campustix/internal/ports/output"
	pkgdiscord "campustix/pkg/discord"
)

var _ output.Publisher = (*Announcer)(nil)

// messageSender is the part of *discordgo.Session the announcer needs.
type messageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts approved events to a Discord channel. Other topics are
// ignored.
type Announcer struct {
	session    messageSender
	channelID  string
	translator output.T
	locale     string
	clock      output.Clock
}

// NewAnnouncer opens a bot session with token.
func NewAnnouncer(token, channelID string, translator output.T, locale string, clock output.Clock) (*Announcer, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création de la session Discord: %w", err)
	}
	return newAnnouncer(s, channelID, translator, locale, clock), nil
}

func newAnnouncer(session messageSender, channelID string, translator output.T, locale string, clock output.Clock) *Announcer {
	return &Announcer{
		session:    session,
		channelID:  channelID,
		translator: translator,
		locale:     locale,
		clock:      clock,
	}
}

func (a *Announcer) Publish(_ context.Context, topic string, message any) error {
	if topic != output.TopicEventApproved {
		return nil
	}
	msg, ok := message.(output.EventMessage)
	if !ok {
		return fmt.Errorf("discord: unexpected %T on %s", message, topic)
	}
	labels := pkgdiscord.EmbedLabels{
		Title:   a.translator.T(a.locale, "announce.title", map[string]any{"Title": msg.Title}),
		When:    a.translator.T(a.locale, "announce.when", nil),
		Where:   a.translator.T(a.locale, "announce.where", nil),
		Tickets: a.translator.T(a.locale, "announce.tickets", nil),
	}
	embed := pkgdiscord.BuildApprovedEventEmbed(labels, msg.Category, msg.ScheduledAt, a.clock.Location(), msg.Location, msg.Capacity)
	if _, err := a.session.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		return fmt.Errorf("discord: annonce de l'événement %d: %w", msg.EventID, err)
	}
	log.Printf("📣 Événement %d annoncé sur Discord", msg.EventID)
	return nil
}

package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"campustix/pkg/schedule"
)

const embedColor = 0x5865F2

// EmbedLabels carries the translated labels of an announcement.
type EmbedLabels struct {
	Title   string
	When    string
	Where   string
	Tickets string
}

func formatTickets(capacity int) string {
	if capacity == 0 {
		return "—"
	}
	return fmt.Sprintf("%d", capacity)
}

// BuildApprovedEventEmbed builds the announcement of a newly approved event.
func BuildApprovedEventEmbed(labels EmbedLabels, category string, scheduledAt time.Time, loc *time.Location, location string, capacity int) *discordgo.MessageEmbed {
	var b strings.Builder
	if category != "" {
		b.WriteString(fmt.Sprintf("**#%s**", category))
	}
	return &discordgo.MessageEmbed{
		Title:       labels.Title,
		Description: b.String(),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: labels.When, Value: schedule.Format(scheduledAt, loc), Inline: true},
			{Name: labels.Where, Value: location, Inline: true},
			{Name: labels.Tickets, Value: formatTickets(capacity), Inline: true},
		},
		Timestamp: scheduledAt.UTC().Format(time.RFC3339),
	}
}

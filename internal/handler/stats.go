package handler

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStats shows the progress dashboard
func (h *Handler) handleStats(c tele.Context) error {
	user := h.currentUser(c)
	if user == nil {
		return c.Send(msgLoginRequired)
	}

	d, err := h.practice.Dashboard(context.Background(), user.ID)
	if err != nil {
		h.logger.Error("Failed to build dashboard", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(msgError)
	}

	var b strings.Builder
	b.WriteString("📊 Your progress\n\n")
	fmt.Fprintf(&b, "Phrases: %d (📖 %d learning, ⭐ %d known)\n", d.Total, d.Learning, d.Known)
	fmt.Fprintf(&b, "This week: %d/%d sessions", d.WeekSessions, d.WeeklyGoal)
	if d.GoalReached {
		b.WriteString(" 🎉 goal reached!")
	}
	b.WriteString("\n\n")

	b.WriteString("📅 Last 7 days:\n")
	for i := len(d.Activity) - 1; i >= 0; i-- {
		day := d.Activity[i]
		fmt.Fprintf(&b, "%s: %s\n", day.DisplayString(), strings.Repeat("■", day.SessionCount))
	}

	if len(d.Recent) > 0 {
		b.WriteString("\n🆕 Recently added:\n")
		for _, p := range d.Recent {
			fmt.Fprintf(&b, "• %s - %s\n", p.DanishText, p.MeaningText)
		}
	}

	return c.Send(b.String())
}

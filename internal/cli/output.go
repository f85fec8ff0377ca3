package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/save4dream/internal/game"
	"github.com/mesh-intelligence/save4dream/pkg/types"
)

var (
	colorCoins   = lipgloss.Color("#FFC107")
	colorSavings = lipgloss.Color("#8BC34A")
	colorInfo    = lipgloss.Color("#2196F3")
	colorWarn    = lipgloss.Color("#e53935")
	colorMuted   = lipgloss.Color("#8a8f98")
)

// printer writes command results either as indented JSON or as styled
// text. Styles come from a renderer bound to the output writer so color
// is dropped when the writer is not a terminal.
type printer struct {
	w        io.Writer
	jsonMode bool

	title   lipgloss.Style
	label   lipgloss.Style
	coins   lipgloss.Style
	savings lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	muted   lipgloss.Style
}

func newPrinter(w io.Writer, jsonMode bool) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:        w,
		jsonMode: jsonMode,
		title:    r.NewStyle().Bold(true).Foreground(colorInfo),
		label:    r.NewStyle().Width(18),
		coins:    r.NewStyle().Bold(true).Foreground(colorCoins),
		savings:  r.NewStyle().Bold(true).Foreground(colorSavings),
		good:     r.NewStyle().Foreground(colorSavings),
		bad:      r.NewStyle().Foreground(colorWarn),
		muted:    r.NewStyle().Foreground(colorMuted),
	}
}

func (a *app) out(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), a.flags.jsonMode)
}

// emit writes v as JSON in JSON mode and calls human otherwise.
func (p *printer) emit(v any, human func()) error {
	if p.jsonMode {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return systemError("marshal output: %w", err)
		}
		fmt.Fprintln(p.w, string(data))
		return nil
	}
	human()
	return nil
}

func (p *printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *printer) printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

func (p *printer) heading(s string) {
	p.println(p.title.Render(s))
}

func (p *printer) field(name string, value any) {
	p.println(p.label.Render(name+":") + fmt.Sprint(value))
}

func (p *printer) stats(s types.UserStats) {
	p.printf("%s  %s  Level %d (%d/%d XP)  KP %d\n",
		p.coins.Render(fmt.Sprintf("%d coins", s.Coins)),
		p.savings.Render(fmt.Sprintf("%d saved", s.Savings)),
		s.Level, s.XP, types.XPPerLevel, s.KnowledgePoints)
}

// outcome prints the result of an action followed by any notifications it
// produced and the resulting balances.
func (p *printer) outcome(out game.Outcome, success string) error {
	return p.emit(out, func() {
		if !out.Applied {
			p.println(p.bad.Render("Not done: " + out.Reason))
			p.stats(out.Stats)
			return
		}
		if success != "" {
			p.println(p.good.Render(success))
		}
		if out.Feedback != "" {
			p.println(out.Feedback)
		}
		if out.LevelsGained > 0 {
			p.println(p.title.Render(fmt.Sprintf("Level up! You are now level %d.", out.Stats.Level)))
		}
		if a := out.Achievement; a != nil {
			p.println(p.title.Render(fmt.Sprintf("Achievement unlocked: %s %s", a.Icon, a.Name)))
		}
		if m := out.Milestone; m != nil {
			p.println(p.title.Render(fmt.Sprintf("Milestone reached: %s %s (%d%%)", m.Icon, m.Name, m.Percentage)))
		}
		if g := out.GoalCompleted; g != nil {
			p.println(p.title.Render(fmt.Sprintf("Goal completed: %s %s", g.Icon, g.Name)))
		}
		for _, step := range out.JourneySteps {
			msg := step.Title
			if step.Reward != nil && step.Reward.Message != "" {
				msg = step.Reward.Message
			}
			p.println(p.muted.Render("Journey: " + msg))
		}
		p.stats(out.Stats)
	})
}

// bar renders a progress bar of width cells for pct percent.
func bar(pct, width int) string {
	pct = max(0, min(pct, 100))
	filled := pct * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/save4dream/pkg/types"
)

// lessonItem is one row of lesson list.
type lessonItem struct {
	ID                      string `json:"id"`
	Title                   string `json:"title"`
	Category                string `json:"category"`
	Difficulty              string `json:"difficulty"`
	RequiredKnowledgePoints int    `json:"requiredKnowledgePoints"`
	Unlocked                bool   `json:"unlocked"`
}

func newLessonCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Learn about money and answer quizzes",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List lessons and which are unlocked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				kp := a.session.State().Stats.KnowledgePoints
				var items []lessonItem
				for _, l := range a.catalog.Lessons() {
					items = append(items, lessonItem{
						ID:                      l.ID,
						Title:                   l.Title,
						Category:                l.Category,
						Difficulty:              l.Difficulty,
						RequiredKnowledgePoints: l.RequiredKnowledgePoints,
						Unlocked:                l.Unlocked(kp),
					})
				}
				p := a.out(cmd)
				return p.emit(items, func() {
					p.heading(fmt.Sprintf("Lessons (you have %d knowledge points)", kp))
					for _, it := range items {
						line := fmt.Sprintf("%-22s %-30s %s", it.ID, it.Title, it.Difficulty)
						if !it.Unlocked {
							line = p.muted.Render(fmt.Sprintf("%s  needs %d KP", line, it.RequiredKnowledgePoints))
						}
						p.println(line)
					}
				})
			},
		},
		&cobra.Command{
			Use:   "start [lesson-id]",
			Short: "Start a lesson; without an id a new lesson is generated",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id := ""
				if len(args) == 1 {
					id = args[0]
				}
				l, err := a.session.StartLesson(cmd.Context(), id)
				if err != nil {
					return err
				}
				p := a.out(cmd)
				return p.emit(l, func() {
					if l.Concept != "" {
						p.println(p.muted.Render(l.Concept))
					}
					p.heading(l.Question)
					for i, opt := range l.Options {
						p.printf("  %d) %s\n", i+1, opt)
					}
					p.println(p.muted.Render("Answer with: save4dream lesson answer <number>"))
				})
			},
		},
		&cobra.Command{
			Use:   "answer <number>",
			Short: "Answer the current lesson's quiz",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("answer %q: %w", args[0], types.ErrInvalidChoice)
				}
				out, err := a.session.AnswerQuiz(n - 1)
				if err != nil {
					return err
				}
				msg := "Not quite. Try another lesson."
				if out.Result == types.LessonSuccess {
					msg = fmt.Sprintf("Correct! +%d knowledge point, +%d coins, +%d XP",
						types.QuizKnowledgePoints, types.QuizCoins, types.QuizXP)
				}
				return a.out(cmd).outcome(out, msg)
			},
		},
	)
	return cmd
}

func newScenarioCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Decide what to do in real-life money situations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start a random scenario you have not finished",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				sc, err := a.session.StartRandomScenario()
				if err != nil {
					return err
				}
				p := a.out(cmd)
				return p.emit(sc, func() {
					p.heading(sc.Icon + " " + sc.Title)
					p.println(sc.Description)
					for _, c := range sc.Choices {
						p.printf("  %-24s %s\n", c.ID, c.Text)
					}
					p.println(p.muted.Render("Choose with: save4dream scenario choose <choice-id>"))
				})
			},
		},
		&cobra.Command{
			Use:   "choose <choice-id>",
			Short: "Answer the current scenario",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := a.session.ChooseScenario(args[0])
				if err != nil {
					return err
				}
				return a.out(cmd).outcome(out, "Scenario complete")
			},
		},
	)
	return cmd
}

package commands

import (
	"fmt"

	"github.com/askdesk/askdesk-go/access"
	"github.com/askdesk/askdesk-go/api"

	"github.com/spf13/cobra"
)

// NewQuestionsCommand creates the questions command group
func NewQuestionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "questions",
		Aliases: []string{"q"},
		Short:   "Admin question management",
	}

	cmd.AddCommand(
		newQuestionsListCommand(),
		newQuestionsUpdateCommand(),
		newQuestionsDeleteCommand(),
		newQuestionsStatsCommand(),
	)

	return cmd
}

func newQuestionsListCommand() *cobra.Command {
	var filter api.QuestionFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions with filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireAdmin(); err != nil {
				return err
			}

			list, err := app.client.Questions().List(cmd.Context(), &filter)
			if err != nil {
				return err
			}

			for _, q := range list.Items {
				fmt.Printf("%s  [%s/%s]  %s\n", q.ID, q.Category, q.Status, q.Title)
			}
			if p := list.Pagination; p != nil {
				fmt.Printf("page %d/%d (%d total)\n", p.Page, p.TotalPages, p.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Status, "status", "", "filter by status")
	cmd.Flags().StringVar(&filter.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&filter.Search, "search", "", "full-text filter")
	cmd.Flags().IntVar(&filter.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "page size")
	return cmd
}

func newQuestionsUpdateCommand() *cobra.Command {
	var answer, status string
	var publish bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Args:  cobra.ExactArgs(1),
		Short: "Answer or re-status a question",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireAdmin(); err != nil {
				return err
			}

			patch := &api.QuestionPatch{}
			if cmd.Flags().Changed("answer") {
				patch.Answer = &answer
			}
			if cmd.Flags().Changed("status") {
				patch.Status = &status
			}
			if cmd.Flags().Changed("publish") {
				patch.ShowInFAQ = &publish
			}

			updated, err := app.client.Questions().Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (%s)\n", updated.ID, updated.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&answer, "answer", "", "answer text")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().BoolVar(&publish, "publish", false, "show in the public FAQ")
	return cmd
}

func newQuestionsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Args:  cobra.ExactArgs(1),
		Short: "Delete a question",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireAdmin(); err != nil {
				return err
			}
			if !app.manager.HasPermission(access.PermDelete) {
				return fmt.Errorf("this account may not delete questions")
			}

			if err := app.client.Questions().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func newQuestionsStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.requireAdmin(); err != nil {
				return err
			}

			stats, err := app.client.Questions().Stats(cmd.Context())
			if err != nil {
				return err
			}

			for key, value := range stats.Overview {
				fmt.Printf("%s: %d\n", key, value)
			}
			for _, c := range stats.CategoryStats {
				fmt.Printf("%s: %d\n", c.Category, c.Count)
			}
			return nil
		},
	}
}

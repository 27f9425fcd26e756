package commands

import (
	"fmt"

	"github.com/askdesk/askdesk-go/api"

	"github.com/spf13/cobra"
)

// NewFAQCommand creates the faq command group
func NewFAQCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faq",
		Short: "Browse the public FAQ archive",
	}

	cmd.AddCommand(
		newFAQListCommand(),
		newFAQSearchCommand(),
		newFAQPopularCommand(),
		newFAQCategoriesCommand(),
	)

	return cmd
}

func printQuestionList(list *api.QuestionList) {
	for _, q := range list.Items {
		fmt.Printf("%s  [%s]  %s\n", q.ID, q.Category, q.Title)
	}
	if p := list.Pagination; p != nil {
		fmt.Printf("page %d/%d (%d total)\n", p.Page, p.TotalPages, p.Total)
	}
}

func newFAQListCommand() *cobra.Command {
	var params api.PageParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published FAQ entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			list, err := app.client.FAQ(app.redisClient()).List(cmd.Context(), &params)
			if err != nil {
				return err
			}
			printQuestionList(list)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Category, "category", "", "filter by category")
	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "page size")
	return cmd
}

func newFAQSearchCommand() *cobra.Command {
	var params api.PageParams

	cmd := &cobra.Command{
		Use:   "search <query>",
		Args:  cobra.ExactArgs(1),
		Short: "Search the FAQ archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			list, err := app.client.FAQ(app.redisClient()).Search(cmd.Context(), args[0], &params)
			if err != nil {
				return err
			}
			printQuestionList(list)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Category, "category", "", "filter by category")
	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "page size")
	return cmd
}

func newFAQPopularCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "popular",
		Short: "Show the latest published entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			items, err := app.client.FAQ(app.redisClient()).Popular(cmd.Context())
			if err != nil {
				return err
			}
			for _, q := range items {
				fmt.Printf("%s  [%s]  %s\n", q.ID, q.Category, q.Title)
			}
			return nil
		},
	}
}

func newFAQCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show FAQ categories with counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			items, err := app.client.FAQ(app.redisClient()).Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range items {
				fmt.Printf("%s: %d\n", c.Category, c.Count)
			}
			return nil
		},
	}
}

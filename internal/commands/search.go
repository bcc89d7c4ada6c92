package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stahnma/gh-search/internal/format"
	ghub "github.com/stahnma/gh-search/internal/github"
	"github.com/stahnma/gh-search/internal/search"
)

var errNoQuery = errors.New("a search query or --language is required")

// searchOutput is the --json document.
type searchOutput struct {
	Query      string `json:"query"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	TotalPages int    `json:"total_pages"`
	*ghub.Result
}

func (a *App) newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Run one repository search and print the results",
		Example: `  gh-search search react hooks --language typescript --sort stars
  gh-search search "web scraping" --page 2 --per-page 50 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, args)
		},
	}
	cmd.Flags().StringP("language", "l", "", "Only repositories written in this language")
	cmd.Flags().StringP("sort", "s", string(ghub.SortBest), "Sort by best, stars, forks or updated")
	cmd.Flags().StringP("order", "o", string(ghub.OrderDesc), "Sort order, desc or asc")
	cmd.Flags().IntP("page", "p", 1, "Page of results to fetch")
	cmd.Flags().Int("per-page", 0, "Results per page: 10, 20, 30 or 50 (default $GH_SEARCH_PER_PAGE or 20)")
	cmd.Flags().Bool("json", false, "Print the results as JSON")
	return cmd
}

func (a *App) runSearch(cmd *cobra.Command, args []string) error {
	filters, err := a.searchFilters(cmd, args)
	if err != nil {
		return err
	}
	query := ghub.EffectiveQuery(filters.Query, filters.Language)
	if query == "" {
		return errNoQuery
	}

	logger := a.cliLogger(cmd.ErrOrStderr())
	res, err := a.searcher(logger).Search(cmd.Context(), filters, a.Config.GitHubToken, query)
	if err != nil {
		return fmt.Errorf("searching repositories: %w", err)
	}

	w := cmd.OutOrStdout()
	totalPages := search.TotalPages(res.TotalCount, filters.PerPage)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return format.WriteJSON(w, searchOutput{
			Query:      query,
			Page:       filters.Page,
			PerPage:    filters.PerPage,
			TotalPages: totalPages,
			Result:     res,
		})
	}

	if len(res.Items) == 0 {
		fmt.Fprintf(w, "No repositories found for %q\n", query)
		return nil
	}

	fmt.Fprintf(w, "%s repositories found", format.Count(res.TotalCount))
	if res.TotalCount > search.MaxResults {
		fmt.Fprint(w, " (showing first 1,000 results)")
	}
	fmt.Fprintln(w)

	now := a.now()
	for _, r := range res.Items {
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(w, "%-45s ★ %-7s %-12s %s\n", r.FullName, format.Number(r.Stars), lang, format.TimeAgo(r.UpdatedAt, now))
	}
	fmt.Fprintf(w, "Page %d of %d\n", filters.Page, totalPages)
	return nil
}

// searchFilters builds the filters from positional arguments and flags.
func (a *App) searchFilters(cmd *cobra.Command, args []string) (ghub.Filters, error) {
	flags := cmd.Flags()
	language, _ := flags.GetString("language")
	sortFlag, _ := flags.GetString("sort")
	orderFlag, _ := flags.GetString("order")
	page, _ := flags.GetInt("page")
	perPage, _ := flags.GetInt("per-page")

	sort, err := ghub.ParseSort(sortFlag)
	if err != nil {
		return ghub.Filters{}, err
	}
	order, err := ghub.ParseOrder(orderFlag)
	if err != nil {
		return ghub.Filters{}, err
	}
	if perPage == 0 {
		perPage = a.Config.PerPage
	}

	filters := ghub.Filters{
		Query:    strings.Join(args, " "),
		Language: language,
		Sort:     sort,
		Order:    order,
		Page:     page,
		PerPage:  perPage,
	}
	if err := filters.Validate(); err != nil {
		return ghub.Filters{}, err
	}
	return filters, nil
}

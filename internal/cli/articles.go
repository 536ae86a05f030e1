package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sidx05/NewsHub/pkg/newsapi"
)

// articleFlags holds the feed filter flags for the articles command.
type articleFlags struct {
	category    string
	query       string
	limit       int
	page        int
	featured    bool
	jsonOut     bool
	interactive bool
}

// params renders the set flags as request parameters. The command is
// consulted so an explicit --featured=false still reaches the backend.
func (f *articleFlags) params(cmd *cobra.Command) newsapi.ArticleParams {
	p := newsapi.ArticleParams{}
	if f.category != "" {
		p["category"] = f.category
	}
	if f.query != "" {
		p["q"] = f.query
	}
	if f.limit > 0 {
		p["limit"] = f.limit
	}
	if f.page > 0 {
		p["page"] = f.page
	}
	if cmd.Flags().Changed("featured") {
		p["featured"] = f.featured
	}
	return p
}

// articlesCommand creates the articles command listing the feed.
func (c *CLI) articlesCommand() *cobra.Command {
	flags := articleFlags{}

	cmd := &cobra.Command{
		Use:   "articles",
		Short: "List articles from the feed",
		Long: `List articles from the feed.

Filters combine: --category narrows to one section, -q searches titles and
summaries, --featured keeps only featured stories. Pagination is server-side
via --limit and --page.

Results are cached for a minute; pass --no-cache to always hit the backend.

Examples:
  newshub articles
  newshub articles --category technology --limit 5
  newshub articles -q "bond yields" --json
  newshub articles -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArticles(cmd.Context(), cmd, &flags)
		},
	}

	cmd.Flags().StringVar(&flags.category, "category", "", "filter by category slug")
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "search titles and summaries")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "articles per page (server default when 0)")
	cmd.Flags().IntVar(&flags.page, "page", 0, "page number, 1-based")
	cmd.Flags().BoolVar(&flags.featured, "featured", false, "only featured articles")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "print raw JSON")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "pick an article interactively")

	return cmd
}

func (c *CLI) runArticles(ctx context.Context, cmd *cobra.Command, flags *articleFlags) error {
	client, err := c.newClient()
	if err != nil {
		return err
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Fetching articles...")
	spinner.Start()
	list := client.FetchArticles(reqCtx, flags.params(cmd))

	// Empty results are valid; an empty result on a dead context is a
	// degraded failure worth surfacing.
	if err := reqCtx.Err(); err != nil && len(list) == 0 {
		spinner.StopWithError("Fetch failed")
		return err
	}
	spinner.Stop()

	if flags.jsonOut {
		return writeRawList(os.Stdout, list)
	}

	articles := decodeArticles(list)

	if flags.interactive {
		return c.pickArticle(ctx, client, articles)
	}

	if len(articles) == 0 {
		printInfo("No articles matched")
		return nil
	}

	fmt.Println(renderArticleTable(articles))
	printFetchStats(len(articles), "articles", c.cacheHit.Load())
	return nil
}

// pickArticle opens the interactive list; selecting an entry fetches and
// prints the full article.
func (c *CLI) pickArticle(ctx context.Context, client *newsapi.Client, articles []articleView) error {
	if len(articles) == 0 {
		printInfo("No articles matched")
		return nil
	}

	p := tea.NewProgram(NewArticleListModel(articles))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("interactive selection: %w", err)
	}

	selected := final.(ArticleListModel).Selected
	if selected == nil {
		return nil
	}
	return c.showArticle(ctx, client, selected.Slug, false)
}

// articleCommand creates the article command showing one story.
func (c *CLI) articleCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "article <slug>",
		Short: "Show a single article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			return c.showArticle(cmd.Context(), client, args[0], jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print raw JSON")

	return cmd
}

// showArticle fetches one article by slug and prints it. The fetch
// degrades rather than failing, so a missing article surfaces as an
// empty or error-shaped body.
func (c *CLI) showArticle(ctx context.Context, client *newsapi.Client, slug string, jsonOut bool) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	raw, err := client.FetchArticleBySlug(reqCtx, slug)
	if err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("article %q not available", slug)
	}

	if jsonOut {
		return writeRaw(os.Stdout, raw)
	}

	var view articleView
	if err := json.Unmarshal(raw, &view); err != nil || view.Title == "" {
		return fmt.Errorf("article %q not found", slug)
	}
	printArticleDetail(view)
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sidx05/NewsHub/pkg/newsapi"
)

// trendingCommand creates the trending command.
func (c *CLI) trendingCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show trending articles",
		Long: `Show the backend's trending aggregate, the most-read articles of
the current window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrending(cmd.Context(), jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print raw JSON")

	return cmd
}

func (c *CLI) runTrending(ctx context.Context, jsonOut bool) error {
	client, err := c.newClient()
	if err != nil {
		return err
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Fetching trending...")
	spinner.Start()
	raw := client.FetchTrending(reqCtx)
	spinner.Stop()

	if jsonOut {
		return writeRaw(os.Stdout, raw)
	}

	// The aggregate is opaque; flatten its article list through the same
	// normalizer a frontend would use.
	articles := decodeArticles(newsapi.NormalizeArrayResponse(raw))
	if len(articles) == 0 {
		printInfo("Nothing trending right now")
		return nil
	}

	fmt.Println(renderTrendingTable(articles))
	if window := trendingWindow(raw); window != "" {
		printDetail("window: %s", window)
	}
	return nil
}

// trendingWindow extracts the aggregate's window label, if any.
func trendingWindow(raw json.RawMessage) string {
	var env struct {
		Window string `json:"window"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.Window
}

// tickersCommand creates the tickers command.
func (c *CLI) tickersCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tickers",
		Short: "Show active market tickers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTickers(cmd.Context(), jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print raw JSON")

	return cmd
}

func (c *CLI) runTickers(ctx context.Context, jsonOut bool) error {
	client, err := c.newClient()
	if err != nil {
		return err
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Fetching tickers...")
	spinner.Start()
	raw := client.FetchActiveTickers(reqCtx)
	spinner.Stop()

	if jsonOut {
		return writeRaw(os.Stdout, raw)
	}

	tickers := decodeTickers(raw)
	if len(tickers) == 0 {
		printInfo("No active tickers")
		return nil
	}

	fmt.Println(renderTickerTable(tickers))
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sidx05/NewsHub/pkg/newsapi"
)

// categoriesCommand creates the categories command listing every section.
func (c *CLI) categoriesCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCategories(cmd.Context(), jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print raw JSON")

	return cmd
}

func (c *CLI) runCategories(ctx context.Context, jsonOut bool) error {
	client, err := c.newClient()
	if err != nil {
		return err
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Fetching categories...")
	spinner.Start()
	list := client.FetchCategories(reqCtx)

	if err := reqCtx.Err(); err != nil && len(list) == 0 {
		spinner.StopWithError("Fetch failed")
		return err
	}
	spinner.Stop()

	if jsonOut {
		return writeRawList(os.Stdout, list)
	}

	categories := decodeCategories(list)
	if len(categories) == 0 {
		printInfo("No categories available")
		return nil
	}

	fmt.Println(renderCategoryTable(categories))
	printFetchStats(len(categories), "categories", c.cacheHit.Load())
	return nil
}

// categoryCommand creates the category command showing one section.
// Unlike the list commands this one surfaces backend failures as errors.
func (c *CLI) categoryCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "category <slug>",
		Short: "Show a single category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCategory(cmd.Context(), args[0], jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print raw JSON")

	return cmd
}

func (c *CLI) runCategory(ctx context.Context, slug string, jsonOut bool) error {
	client, err := c.newClient()
	if err != nil {
		return err
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	raw, err := client.FetchCategoryBySlug(reqCtx, slug)
	if errors.Is(err, newsapi.ErrNotFound) {
		return fmt.Errorf("category %q not found", slug)
	}
	if err != nil {
		return err
	}

	if jsonOut {
		return writeRaw(os.Stdout, raw)
	}

	var view categoryView
	if err := json.Unmarshal(raw, &view); err != nil {
		return fmt.Errorf("category %q: unexpected response shape", slug)
	}
	printCategoryDetail(view)
	return nil
}

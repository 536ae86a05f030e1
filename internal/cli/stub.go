package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sidx05/NewsHub/internal/stub"
)

// stubCommand creates the stub command running a local backend.
func (c *CLI) stubCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local development backend",
		Long: `Run a local development backend serving the NewsHub content endpoints
with seeded fixture data.

By default the fixtures live in memory. With --mongo-uri they are stored
in MongoDB instead, seeded on first run, so restarts keep edits made
directly in the database.

The default address matches the client's local fallback host: a plain
'newshub articles' in another terminal talks to the stub directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStub(cmd.Context(), addr, mongoURI)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:3000", "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "serve fixtures from this MongoDB instance")

	return cmd
}

func (c *CLI) runStub(ctx context.Context, addr, mongoURI string) error {
	var store stub.Store
	if mongoURI != "" {
		ms, err := stub.NewMongoStore(ctx, mongoURI)
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		p := newProgress(c.Logger)
		if err := ms.EnsureSeed(ctx); err != nil {
			_ = ms.Close(ctx)
			return fmt.Errorf("seed mongodb: %w", err)
		}
		p.done("Fixtures ready in mongodb")
		store = ms
	} else {
		store = stub.NewMemStore()
	}
	defer store.Close(context.Background())

	printInfo("Stub backend on http://%s", addr)
	printNextStep("Try it", fmt.Sprintf("newshub articles --host http://%s", addr))
	printNewline()

	return stub.NewServer(store, c.Logger).ListenAndServe(ctx, addr)
}

// safeguardctl seeds, purges and maintains the SafeGuard store.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"safeguard-backend/internal/app"
	"safeguard-backend/internal/config"
	"safeguard-backend/internal/infrastructure/db"
	"safeguard-backend/internal/infrastructure/ipfs"
	applog "safeguard-backend/internal/logger"
	"safeguard-backend/internal/seed"
	policyuc "safeguard-backend/internal/usecase/policy"
)

// storeOpener connects to the configured backend; tests swap it out.
type storeOpener func(ctx context.Context) (*app.Store, error)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	if err := applog.Init(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer applog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	open := func(ctx context.Context) (*app.Store, error) { return app.OpenStore(ctx, cfg) }
	if err := newRootCmd(open, os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open storeOpener, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "safeguardctl",
		Short: "Maintenance tasks for the SafeGuard store",
		Long: `Seed demo data, remove it again, expire lapsed policies and
create MongoDB indexes. The store is selected with STORE_DRIVER.`,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	withStore := func(fn func(cmd *cobra.Command, st *app.Store, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			st, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close(context.Background()) }()
			return fn(cmd, st, args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:       "seed [policies|claims|insurance-options|tokens|all]...",
			Short:     "Insert demo fixtures into empty collections",
			ValidArgs: []string{"policies", "claims", "insurance-options", "tokens", "all"},
			RunE: withStore(func(cmd *cobra.Command, st *app.Store, args []string) error {
				kinds, err := seed.ParseKinds(args)
				if err != nil {
					return err
				}
				fx, err := seed.Default()
				if err != nil {
					return err
				}
				return seed.New(st.SeedRepos(), fx, cmd.OutOrStdout()).Seed(cmd.Context(), kinds...)
			}),
		},
		&cobra.Command{
			Use:       "purge [policies|claims|insurance-options|tokens|all]...",
			Short:     "Delete every document of the given collections",
			ValidArgs: []string{"policies", "claims", "insurance-options", "tokens", "all"},
			RunE: withStore(func(cmd *cobra.Command, st *app.Store, args []string) error {
				kinds, err := seed.ParseKinds(args)
				if err != nil {
					return err
				}
				return seed.New(st.SeedRepos(), nil, cmd.OutOrStdout()).Purge(cmd.Context(), kinds...)
			}),
		},
		&cobra.Command{
			Use:   "expire",
			Short: "Mark active policies past their end date as expired",
			Args:  cobra.NoArgs,
			RunE: withStore(func(cmd *cobra.Command, st *app.Store, _ []string) error {
				n, err := policyuc.NewUsecase(st.Policies, st.UoW, ipfs.Disabled{}).ExpireDue(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Expired %d policies.\n", n)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "indexes",
			Short: "Create the MongoDB indexes",
			Args:  cobra.NoArgs,
			RunE: withStore(func(cmd *cobra.Command, st *app.Store, _ []string) error {
				if st.Mongo == nil {
					return fmt.Errorf("indexes: STORE_DRIVER must be %q, SQL tables are migrated on open", config.StoreMongo)
				}
				if err := db.EnsureIndexes(cmd.Context(), st.Mongo); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Indexes created.")
				return nil
			}),
		},
	)
	return root
}

// Package main provides the shopgraph CLI entry point. The CLI is a thin
// collaborator around the core: it parses arguments, calls one graph
// operation, and prints the returned structure as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dusk-indust/shopgraph/internal/config"
	"github.com/dusk-indust/shopgraph/internal/graph"
	"github.com/dusk-indust/shopgraph/internal/loader"
	"github.com/dusk-indust/shopgraph/internal/report"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cliEnv carries the shared state every subcommand needs.
type cliEnv struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	var (
		configDir string
		verbose   bool
		env       cliEnv
	)

	rootCmd := &cobra.Command{
		Use:           "shopgraph",
		Short:         "Commerce graph loader and query tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			env = cliEnv{cfg: cfg, log: log}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding shopgraph.yml")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Bulk-load the four CSV sources and derive relationship edges",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, &env)
		},
	}
	loadCmd.Flags().String("customers", "", "customers source URL or file (overrides config)")
	loadCmd.Flags().String("products", "", "products source URL or file (overrides config)")
	loadCmd.Flags().String("brands", "", "brands source URL or file (overrides config)")
	loadCmd.Flags().String("purchases", "", "purchase facts source URL or file (overrides config)")
	rootCmd.AddCommand(loadCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "report",
		Short: "Print the top-5 products, customers, and brands by sold quantity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(&env)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "copurchase <first-name> <last-name>",
		Short: "Find customers sharing at least two purchased products with the named customer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoPurchase(&env, args[0], args[1])
		},
	})

	registerCmd := &cobra.Command{
		Use:   "register <customer-id>",
		Short: "Register purchase line items for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, &env, args[0])
		},
	}
	registerCmd.Flags().StringArray("item", nil, "line item as product-id:quantity (repeatable)")
	rootCmd.AddCommand(registerCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print node and edge counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(&env)
		},
	})

	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// withStore opens the configured store, initializes the schema, and runs fn
// with a deadline-bound context.
func withStore(env *cliEnv, timeout time.Duration, fn func(ctx context.Context, store graph.Store) error) error {
	store, err := openStore(env.cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := store.InitSchema(ctx); err != nil {
		return err
	}
	return fn(ctx, store)
}

func runLoad(cmd *cobra.Command, env *cliEnv) error {
	src := loader.Sources{
		Customers: flagOrConfig(cmd, "customers", env.cfg.Sources.Customers),
		Products:  flagOrConfig(cmd, "products", env.cfg.Sources.Products),
		Brands:    flagOrConfig(cmd, "brands", env.cfg.Sources.Brands),
		Purchases: flagOrConfig(cmd, "purchases", env.cfg.Sources.Purchases),
	}
	for name, loc := range map[string]string{
		"customers": src.Customers,
		"products":  src.Products,
		"brands":    src.Brands,
		"purchases": src.Purchases,
	} {
		if loc == "" {
			return fmt.Errorf("no %s source given (flag or config)", name)
		}
	}
	return withStore(env, env.cfg.LoadTimeout(), func(ctx context.Context, store graph.Store) error {
		return loader.New(store, nil, env.log).Load(ctx, src)
	})
}

func runReport(env *cliEnv) error {
	return withStore(env, env.cfg.QueryTimeout(), func(ctx context.Context, store graph.Store) error {
		rep, err := report.Build(ctx, store)
		if err != nil {
			return err
		}
		return printJSON(rep)
	})
}

func runCoPurchase(env *cliEnv, firstName, lastName string) error {
	return withStore(env, env.cfg.QueryTimeout(), func(ctx context.Context, store graph.Store) error {
		out, err := store.CoPurchasers(ctx, firstName, lastName)
		if err != nil {
			return err
		}
		return printJSON(out)
	})
}

func runRegister(cmd *cobra.Command, env *cliEnv, rawCustomerID string) error {
	customerID, err := strconv.ParseInt(rawCustomerID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid customer id %q: %w", rawCustomerID, err)
	}
	rawItems, err := cmd.Flags().GetStringArray("item")
	if err != nil {
		return err
	}
	if len(rawItems) == 0 {
		return fmt.Errorf("at least one --item is required")
	}
	lines := make([]graph.PurchaseLine, 0, len(rawItems))
	for _, raw := range rawItems {
		line, err := parseLine(raw)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	return withStore(env, env.cfg.QueryTimeout(), func(ctx context.Context, store graph.Store) error {
		return graph.RegisterPurchases(ctx, store, customerID, lines)
	})
}

func runStatus(env *cliEnv) error {
	return withStore(env, env.cfg.QueryTimeout(), func(ctx context.Context, store graph.Store) error {
		stats, err := store.Stats(ctx)
		if err != nil {
			return err
		}
		return printJSON(stats)
	})
}

// parseLine parses "product-id:quantity" into a PurchaseLine.
func parseLine(raw string) (graph.PurchaseLine, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return graph.PurchaseLine{}, fmt.Errorf("invalid item %q: want product-id:quantity", raw)
	}
	productID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return graph.PurchaseLine{}, fmt.Errorf("invalid product id in %q: %w", raw, err)
	}
	quantity, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return graph.PurchaseLine{}, fmt.Errorf("invalid quantity in %q: %w", raw, err)
	}
	return graph.PurchaseLine{ProductID: productID, Quantity: quantity}, nil
}

// flagOrConfig prefers an explicitly set flag value over the config default.
func flagOrConfig(cmd *cobra.Command, name, fallback string) string {
	if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
		return v
	}
	return fallback
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nataliegryphon/credwatch/pkg/account"
	"github.com/nataliegryphon/credwatch/pkg/manager"
	"github.com/nataliegryphon/credwatch/pkg/monitor"
)

var watchAutoYes bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the credentials file and reload accounts on change",
	Long: `Watch polls the configured credentials file for changes. When the
file content changes, you are asked on the terminal whether to reload
the stored accounts; answering yes re-reads every account from the
database and notifies its listeners.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchAutoYes, "yes", "y", false, "reload without prompting")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open account store: %w", err)
	}
	defer func() { _ = store.Close() }()

	ids, err := store.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		// Nothing stored yet; watch on behalf of the default account.
		ids = []string{"default"}
	}

	accounts := make([]*account.Account, 0, len(ids))
	for _, id := range ids {
		acct, err := account.New(id, store, store)
		if err != nil {
			return err
		}
		accounts = append(accounts, acct)
	}

	strategy, err := monitor.ParseStrategy(cfg.Monitor.Strategy)
	if err != nil {
		return err
	}

	mgr, err := manager.New(manager.Config{
		Target:   cfg.Target,
		Interval: cfg.Monitor.Interval,
		Strategy: strategy,
	}, accounts, confirmReload(cmd.OutOrStdout(), watchAutoYes), log)
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()

	if err := mgr.Start(); err != nil {
		return err
	}

	go func() {
		for u := range mgr.Updates() {
			fmt.Fprintf(cmd.OutOrStdout(), "reloaded %d account(s) after change to %s\n",
				u.Reloaded, u.Path)
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s (interval %s, strategy %s)\n",
		cfg.Target, cfg.Monitor.Interval, cfg.Monitor.Strategy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	return mgr.Stop()
}

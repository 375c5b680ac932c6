package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minibank-dev/minibank/internal/registry"
	"github.com/minibank-dev/minibank/internal/session"
)

func newShellCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive banking menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}

func runShell(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	reg := registry.New(cfg.Bank.Branch, cfg.CheckingLimits())
	logger.Debug("session started",
		"branch", cfg.Bank.Branch,
		"ceiling", cfg.Checking.WithdrawalCeiling.StringFixed(2),
		"quota", cfg.Checking.WithdrawalQuota,
		"quota_window", cfg.Checking.QuotaWindow)

	s := session.New(reg, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	if err := s.Run(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	logger.Debug("session ended", "clients", len(reg.Clients()), "accounts", len(reg.Accounts()))
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/crypto"
	"github.com/eigerco/rngdao/internal/cycle"
	"github.com/eigerco/rngdao/internal/store"
)

type ShowOptions struct {
	*RootOptions
	Cycle uint64
}

type cycleView struct {
	ID cycle.ID `json:"id"`
	cycle.Cycle
	Schedule      *cycle.Schedule        `json:"schedule,omitempty"`
	Escrow        common.AccountID       `json:"escrow"`
	EscrowBalance common.Balance         `json:"escrow_balance"`
	Generators    []store.GeneratorEntry `json:"generators"`
}

func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one cycle, or every cycle without --cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	registerCycleFlag(cmd.Flags(), &opts.Cycle)

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
	return withEnvironment(opts.RootOptions, func(env *environment) error {
		var ids []cycle.ID
		if cmd.Flags().Changed("cycle") {
			ids = append(ids, cycle.ID(opts.Cycle))
		} else {
			entries, err := env.engine.Cycles()
			if err != nil {
				return err
			}
			for _, entry := range entries {
				ids = append(ids, entry.ID)
			}
		}

		views := make([]cycleView, 0, len(ids))
		for _, id := range ids {
			v, err := viewCycle(env, id)
			if err != nil {
				return err
			}
			views = append(views, v)
		}

		return newPrinter(opts.RootOptions, cmd).print(views, func(w io.Writer) {
			if len(views) == 0 {
				fmt.Fprintln(w, "no cycles")
			}
			for _, v := range views {
				printCycle(w, v)
			}
		})
	})
}

func viewCycle(env *environment, id cycle.ID) (cycleView, error) {
	c, err := env.engine.Cycle(id)
	if err != nil {
		return cycleView{}, err
	}
	gs, err := env.engine.Generators(id)
	if err != nil {
		return cycleView{}, err
	}
	escrowAccount := env.engine.EscrowAccount(id)
	balance, err := env.engine.Balance(escrowAccount)
	if err != nil {
		return cycleView{}, err
	}

	v := cycleView{
		ID:            id,
		Cycle:         c,
		Escrow:        escrowAccount,
		EscrowBalance: balance,
		Generators:    gs,
	}
	if s, err := env.engine.Schedule(id); err == nil {
		v.Schedule = &s
	}
	return v, nil
}

func printCycle(w io.Writer, v cycleView) {
	fmt.Fprintf(w, "cycle %d: %s\n", v.ID, v.Status)
	fmt.Fprintf(w, "  creator:    %s\n", v.Creator)
	fmt.Fprintf(w, "  bounty:     %d\n", v.Bounty)
	fmt.Fprintf(w, "  generators: %d committed, %d revealed\n", v.GeneratorsCount, v.RevealedCount)
	if v.Status == cycle.CompletedWithSuccess {
		fmt.Fprintf(w, "  random:     %d\n", v.RandomNumber)
	}
	if v.Schedule != nil {
		fmt.Fprintf(w, "  ticks:      started %d, bots after %d, reveal from %d, finalize from %d\n",
			v.Schedule.Started, v.Schedule.BotsAfter, v.Schedule.RevealFrom, v.Schedule.FinalizeFrom)
	}
	fmt.Fprintf(w, "  escrow:     %s (%d)\n", v.Escrow, v.EscrowBalance)
	for _, g := range v.Generators {
		fmt.Fprintf(w, "  pending:    %s hash %s bot=%t\n", g.Account, g.Generator.Hash, g.Generator.IsBot)
	}
}

type MintOptions struct {
	*RootOptions
	Account string
	Amount  uint64
}

type balanceResult struct {
	Account common.AccountID `json:"account"`
	Balance common.Balance   `json:"balance"`
}

// NewMintCommand credits an account out of thin air. It exists to fund
// development accounts, the engine itself never mints.
func NewMintCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MintOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "mint",
		Short:   "Credit an account, for development",
		Example: `  rngdao mint --account alice --amount 1000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMint(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Account, "account", "", "account to credit, hex or dev alias")
	cmd.Flags().Uint64Var(&opts.Amount, "amount", 0, "amount to credit")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runMint(opts *MintOptions, cmd *cobra.Command) error {
	who, err := common.ResolveAccount(opts.Account)
	if err != nil {
		return fmt.Errorf("--account: %w", err)
	}

	return withEnvironment(opts.RootOptions, func(env *environment) error {
		err := env.registry.Update(func(tx *store.Tx) error {
			return env.balances.Mint(tx.KV(), who, common.Balance(opts.Amount))
		})
		if err != nil {
			return err
		}
		return printBalance(env, opts.RootOptions, cmd, who)
	})
}

type BalanceOptions struct {
	*RootOptions
	Account string
	Escrow  uint64
}

func NewBalanceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BalanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the balance of an account or of a cycle escrow",
		Example: `  rngdao balance --account bob
  rngdao balance --escrow 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Account, "account", "", "account, hex or dev alias")
	cmd.Flags().Uint64Var(&opts.Escrow, "escrow", 0, "cycle whose escrow account to show")
	cmd.MarkFlagsMutuallyExclusive("account", "escrow")
	cmd.MarkFlagsOneRequired("account", "escrow")

	return cmd
}

func runBalance(opts *BalanceOptions, cmd *cobra.Command) error {
	var who common.AccountID
	if opts.Account != "" {
		var err error
		who, err = common.ResolveAccount(opts.Account)
		if err != nil {
			return fmt.Errorf("--account: %w", err)
		}
	}

	return withEnvironment(opts.RootOptions, func(env *environment) error {
		if cmd.Flags().Changed("escrow") {
			who = env.engine.EscrowAccount(cycle.ID(opts.Escrow))
		}
		return printBalance(env, opts.RootOptions, cmd, who)
	})
}

func printBalance(env *environment, opts *RootOptions, cmd *cobra.Command, who common.AccountID) error {
	balance, err := env.engine.Balance(who)
	if err != nil {
		return err
	}
	res := balanceResult{Account: who, Balance: balance}
	return newPrinter(opts, cmd).print(res, func(w io.Writer) {
		fmt.Fprintf(w, "%s %d\n", res.Account, res.Balance)
	})
}

type HashOptions struct {
	*RootOptions
	Secret uint64
}

type hashResult struct {
	Secret uint64      `json:"secret"`
	Hash   crypto.Hash `json:"hash"`
}

// NewHashCommand prints the commitment for a secret without touching the
// store, so secrets can be hashed offline before committing.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HashOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "hash",
		Short:   "Compute the commitment of a secret",
		Example: `  rngdao hash --secret 9897`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("secret") {
				return errors.New("--secret is required")
			}
			res := hashResult{Secret: opts.Secret, Hash: crypto.CommitSecret(opts.Secret)}
			return newPrinter(opts.RootOptions, cmd).print(res, func(w io.Writer) {
				fmt.Fprintln(w, res.Hash)
			})
		},
	}

	cmd.Flags().Uint64Var(&opts.Secret, "secret", 0, "secret to hash")

	return cmd
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/crypto"
	"github.com/eigerco/rngdao/internal/cycle"
)

type OpenOptions struct {
	*RootOptions
	callFlags
	Bounty uint64
}

type openResult struct {
	CycleID cycle.ID         `json:"cycle_id"`
	Escrow  common.AccountID `json:"escrow"`
	Bounty  common.Balance   `json:"bounty"`
}

func NewOpenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OpenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "open",
		Short:   "Open a new cycle funded with a bounty",
		Example: `  rngdao open --caller alice --bounty 200 --tick 1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(opts, cmd)
		},
	}

	opts.register(cmd, cmd.Flags())
	cmd.Flags().Uint64Var(&opts.Bounty, "bounty", 0, "bounty paid out to generators")
	_ = cmd.MarkFlagRequired("bounty")

	return cmd
}

func runOpen(opts *OpenOptions, cmd *cobra.Command) error {
	creator, err := opts.caller()
	if err != nil {
		return err
	}
	return withEnvironment(opts.RootOptions, func(env *environment) error {
		id, err := env.engine.Open(creator, common.Balance(opts.Bounty), opts.now())
		if err != nil {
			return err
		}
		res := openResult{CycleID: id, Escrow: env.engine.EscrowAccount(id), Bounty: common.Balance(opts.Bounty)}
		return newPrinter(opts.RootOptions, cmd).print(res, func(w io.Writer) {
			fmt.Fprintf(w, "opened cycle %d, escrow %s\n", res.CycleID, res.Escrow)
		})
	})
}

type CommitOptions struct {
	*RootOptions
	callFlags
	Cycle  uint64
	Secret uint64
	Hash   string
	Bot    bool
}

type commitResult struct {
	CycleID cycle.ID         `json:"cycle_id"`
	Sender  common.AccountID `json:"sender"`
	Hash    crypto.Hash      `json:"hash"`
}

func NewCommitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CommitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit the hash of a secret to a cycle",
		Long: `Commit the hash of a secret to a cycle, locking the deposit in escrow.

Either pass the secret, which is hashed locally and never stored, or a
precomputed commitment from "rngdao hash".`,
		Example: `  rngdao commit --caller bob --cycle 0 --secret 9897 --tick 1
  rngdao commit --caller dave --cycle 0 --hash 0x... --bot --tick 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(opts, cmd)
		},
	}

	opts.register(cmd, cmd.Flags())
	registerCycleFlag(cmd.Flags(), &opts.Cycle)
	cmd.Flags().Uint64Var(&opts.Secret, "secret", 0, "secret to commit to")
	cmd.Flags().StringVar(&opts.Hash, "hash", "", "precomputed commitment")
	cmd.Flags().BoolVar(&opts.Bot, "bot", false, "commit as a bot")
	_ = cmd.MarkFlagRequired("cycle")
	cmd.MarkFlagsMutuallyExclusive("secret", "hash")
	cmd.MarkFlagsOneRequired("secret", "hash")

	return cmd
}

func runCommit(opts *CommitOptions, cmd *cobra.Command) error {
	sender, err := opts.caller()
	if err != nil {
		return err
	}
	hash := crypto.CommitSecret(opts.Secret)
	if opts.Hash != "" {
		hash, err = crypto.ParseHash(opts.Hash)
		if err != nil {
			return fmt.Errorf("--hash: %w", err)
		}
	}
	id := cycle.ID(opts.Cycle)

	return withEnvironment(opts.RootOptions, func(env *environment) error {
		if err := env.engine.Commit(sender, id, hash, opts.Bot, opts.now()); err != nil {
			return err
		}
		res := commitResult{CycleID: id, Sender: sender, Hash: hash}
		return newPrinter(opts.RootOptions, cmd).print(res, func(w io.Writer) {
			fmt.Fprintf(w, "committed %s to cycle %d\n", res.Hash, res.CycleID)
		})
	})
}

type RevealOptions struct {
	*RootOptions
	callFlags
	Cycle  uint64
	Secret uint64
	Bot    bool
}

type revealResult struct {
	CycleID cycle.ID         `json:"cycle_id"`
	Sender  common.AccountID `json:"sender"`
	Balance common.Balance   `json:"balance"`
}

func NewRevealCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RevealOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "reveal",
		Short:   "Reveal the secret behind a commitment",
		Example: `  rngdao reveal --caller bob --cycle 0 --secret 9897 --tick 7`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReveal(opts, cmd)
		},
	}

	opts.register(cmd, cmd.Flags())
	registerCycleFlag(cmd.Flags(), &opts.Cycle)
	cmd.Flags().Uint64Var(&opts.Secret, "secret", 0, "committed secret")
	cmd.Flags().BoolVar(&opts.Bot, "bot", false, "reveal as a bot")
	_ = cmd.MarkFlagRequired("cycle")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

func runReveal(opts *RevealOptions, cmd *cobra.Command) error {
	sender, err := opts.caller()
	if err != nil {
		return err
	}
	id := cycle.ID(opts.Cycle)

	return withEnvironment(opts.RootOptions, func(env *environment) error {
		if err := env.engine.Reveal(sender, id, opts.Secret, opts.Bot, opts.now()); err != nil {
			return err
		}
		balance, err := env.engine.Balance(sender)
		if err != nil {
			return err
		}
		res := revealResult{CycleID: id, Sender: sender, Balance: balance}
		return newPrinter(opts.RootOptions, cmd).print(res, func(w io.Writer) {
			fmt.Fprintf(w, "revealed secret for cycle %d, balance %d\n", res.CycleID, res.Balance)
		})
	})
}

type FinalizeOptions struct {
	*RootOptions
	callFlags
	Cycle uint64
}

type finalizeResult struct {
	CycleID      cycle.ID     `json:"cycle_id"`
	Status       cycle.Status `json:"status"`
	RandomNumber *uint64      `json:"random_number,omitempty"`
}

func NewFinalizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FinalizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "finalize",
		Short:   "Finalize a cycle and publish its random number",
		Example: `  rngdao finalize --caller alice --cycle 0 --tick 12`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFinalize(opts, cmd)
		},
	}

	opts.register(cmd, cmd.Flags())
	registerCycleFlag(cmd.Flags(), &opts.Cycle)
	_ = cmd.MarkFlagRequired("cycle")

	return cmd
}

func runFinalize(opts *FinalizeOptions, cmd *cobra.Command) error {
	creator, err := opts.caller()
	if err != nil {
		return err
	}
	id := cycle.ID(opts.Cycle)

	return withEnvironment(opts.RootOptions, func(env *environment) error {
		c, err := env.engine.Finalize(creator, id, opts.now())
		if err != nil {
			return err
		}
		res := finalizeResult{CycleID: id, Status: c.Status}
		if c.Status == cycle.CompletedWithSuccess {
			res.RandomNumber = &c.RandomNumber
		}
		return newPrinter(opts.RootOptions, cmd).print(res, func(w io.Writer) {
			if res.RandomNumber == nil {
				fmt.Fprintf(w, "cycle %d failed, bounty refunded\n", res.CycleID)
				return
			}
			fmt.Fprintf(w, "cycle %d completed, random number %d\n", res.CycleID, *res.RandomNumber)
		})
	})
}

type SweepOptions struct {
	*RootOptions
	callFlags
	Cycle uint64
}

type sweepResult struct {
	CycleID     cycle.ID         `json:"cycle_id"`
	Destination common.AccountID `json:"destination"`
	Amount      common.Balance   `json:"amount"`
}

func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Move residual escrow funds of a finalized cycle to the treasury",
		Example: `  rngdao sweep --caller alice --cycle 0 --tick 12`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(opts, cmd)
		},
	}

	opts.register(cmd, cmd.Flags())
	registerCycleFlag(cmd.Flags(), &opts.Cycle)
	_ = cmd.MarkFlagRequired("cycle")

	return cmd
}

func runSweep(opts *SweepOptions, cmd *cobra.Command) error {
	creator, err := opts.caller()
	if err != nil {
		return err
	}
	id := cycle.ID(opts.Cycle)

	return withEnvironment(opts.RootOptions, func(env *environment) error {
		amount, err := env.engine.Sweep(creator, id, opts.now())
		if err != nil {
			return err
		}
		res := sweepResult{CycleID: id, Destination: env.params.TreasuryAccount(), Amount: amount}
		return newPrinter(opts.RootOptions, cmd).print(res, func(w io.Writer) {
			fmt.Fprintf(w, "swept %d from cycle %d to %s\n", res.Amount, res.CycleID, res.Destination)
		})
	})
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/eigerco/rngdao/internal/common"
	"github.com/eigerco/rngdao/internal/ticktime"
)

// callFlags are shared by every command that acts on behalf of an account at
// a given tick.
type callFlags struct {
	Caller string
	Tick   uint32
}

func (f *callFlags) register(cmd *cobra.Command, fs *pflag.FlagSet) {
	fs.StringVar(&f.Caller, "caller", "", "calling account, hex or dev alias such as alice")
	fs.Uint32Var(&f.Tick, "tick", 0, "current tick")
	_ = cmd.MarkFlagRequired("caller")
	_ = cmd.MarkFlagRequired("tick")
}

func (f *callFlags) caller() (common.AccountID, error) {
	who, err := common.ResolveAccount(f.Caller)
	if err != nil {
		return common.AccountID{}, fmt.Errorf("--caller: %w", err)
	}
	return who, nil
}

func (f *callFlags) now() ticktime.Tick {
	return ticktime.Tick(f.Tick)
}

func registerCycleFlag(fs *pflag.FlagSet, id *uint64) {
	fs.Uint64Var(id, "cycle", 0, "cycle id")
}

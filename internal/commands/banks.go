package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/bank"
)

func newBanksCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List bank rules in the order they are tried",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := root.load(root.configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runBanks(cmd.OutOrStdout(), rt.registry)
		},
	}
}

func runBanks(out io.Writer, enabled *bank.Registry) error {
	for i, id := range bank.DefaultRegistry(time.UTC).BankIDs() {
		status := "enabled"
		if !enabled.Has(id) {
			status = "disabled"
		}
		if _, err := fmt.Fprintf(out, "%d\t%s\t%s\n", i+1, id, status); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cn-pmlabs/gosai/lib/asicdb"
	odbc "github.com/cn-pmlabs/gosai/lib/ovsdb_client"
)

var version string = "0.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "saictl",
		Short:         "Edit the SAI_ASIC database consumed by syncd",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("addr", "a", odbc.AsicdbAddr, "asic database address")
	root.AddCommand(newSwitchCmd(), newNextHopCmd(), newNextHopGroupCmd(), newFECCmd())
	return root
}

// connect the database named by the addr flag
func connect(cmd *cobra.Command) (*asicdb.DB, error) {
	addr, _ := cmd.Flags().GetString("addr")
	return asicdb.Connect(addr)
}

// withDB run fn on a connection closed afterwards
func withDB(fn func(cmd *cobra.Command, db *asicdb.DB, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := connect(cmd)
		if err != nil {
			return err
		}
		defer db.Close()
		return fn(cmd, db, args)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "saictl: %v\n", err)
		os.Exit(1)
	}
}

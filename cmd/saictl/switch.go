package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cn-pmlabs/gosai/lib/asicdb"
)

func newSwitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch",
		Short: "Switch rows",
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a switch",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			warm, _ := cmd.Flags().GetBool("warm")
			uuid, err := db.SwitchAdd(asicdb.TableSwitch{Name: args[0], RestartWarm: warm})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], uuid)
			return nil
		}),
	}
	add.Flags().Bool("warm", false, "restore the switch from the warmboot journal")

	del := &cobra.Command{
		Use:   "del NAME",
		Short: "Delete a switch",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			return db.SwitchDelByName(args[0])
		}),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List switches",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			for _, sw := range db.SwitchList() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s warm=%-5v %s\n", sw.Name, sw.RestartWarm, sw.OID)
			}
			return nil
		}),
	}

	cmd.AddCommand(add, del, list)
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cn-pmlabs/gosai/lib/asicdb"
)

func newFECCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fec",
		Short: "FEC rows",
	}

	add := &cobra.Command{
		Use:   "add NAME [--next-hop NH]",
		Short: "Add a FEC, optionally pointing at a next hop or group",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			name, _ := cmd.Flags().GetString("next-hop")
			nh, err := db.ResolveNextHop(name)
			if err != nil {
				return err
			}
			uuid, err := db.FECAdd(asicdb.TableFEC{Name: args[0], NextHop: nh})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], uuid)
			return nil
		}),
	}
	add.Flags().String("next-hop", "", "next hop or next hop group name")

	set := &cobra.Command{
		Use:   "set NAME --next-hop NH|null",
		Short: "Point a FEC at another next hop, null clears it",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			name, _ := cmd.Flags().GetString("next-hop")
			nh, err := db.ResolveNextHop(name)
			if err != nil {
				return err
			}
			return db.FECSetNextHop(args[0], nh)
		}),
	}
	set.Flags().String("next-hop", "", "next hop or next hop group name, null for none")
	_ = set.MarkFlagRequired("next-hop")

	del := &cobra.Command{
		Use:   "del NAME",
		Short: "Delete a FEC",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			return db.FECDelByName(args[0])
		}),
	}

	get := &cobra.Command{
		Use:   "get NAME",
		Short: "Show a FEC with its next hop and object id",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			fec, err := db.FECGetByName(args[0])
			if err != nil {
				return err
			}
			printFEC(cmd, fec, nextHopNames(db))
			return nil
		}),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List FECs with their next hop",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			names := nextHopNames(db)
			for _, fec := range db.FECList() {
				printFEC(cmd, fec, names)
			}
			return nil
		}),
	}

	cmd.AddCommand(add, set, get, del, list)
	return cmd
}

// nextHopNames next hop and group names by row uuid
func nextHopNames(db *asicdb.DB) map[string]string {
	names := make(map[string]string)
	for _, nh := range db.NextHopList() {
		names[nh.UUID] = nh.Name
	}
	for _, nhg := range db.NextHopGroupList() {
		names[nhg.UUID] = nhg.Name
	}
	return names
}

func printFEC(cmd *cobra.Command, fec asicdb.TableFEC, names map[string]string) {
	nh := "null"
	if fec.NextHop != "" {
		nh = names[fec.NextHop]
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-16s %s\n", fec.Name, nh, fec.OID)
}

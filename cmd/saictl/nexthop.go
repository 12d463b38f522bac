package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/cn-pmlabs/gosai/lib/asicdb"
)

func newNextHopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nexthop",
		Aliases: []string{"nh"},
		Short:   "Next hop rows",
	}

	add := &cobra.Command{
		Use:   "add NAME --ip IP",
		Short: "Add an IP next hop",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			ip, _ := cmd.Flags().GetString("ip")
			uuid, err := db.NextHopAdd(asicdb.TableNextHop{Name: args[0], IP: ip})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], uuid)
			return nil
		}),
	}
	add.Flags().String("ip", "", "next hop address")
	_ = add.MarkFlagRequired("ip")
	add.PreRunE = func(cmd *cobra.Command, args []string) error {
		ip, _ := cmd.Flags().GetString("ip")
		if net.ParseIP(ip) == nil {
			return fmt.Errorf("invalid ip %q", ip)
		}
		return nil
	}

	del := &cobra.Command{
		Use:   "del NAME",
		Short: "Delete a next hop",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			return db.NextHopDelByName(args[0])
		}),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List next hops",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			for _, nh := range db.NextHopList() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-39s %s\n", nh.Name, nh.IP, nh.OID)
			}
			return nil
		}),
	}

	cmd.AddCommand(add, del, list)
	return cmd
}

func newNextHopGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nhg",
		Short: "Next hop group rows",
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a next hop group",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			typ, _ := cmd.Flags().GetString("type")
			uuid, err := db.NextHopGroupAdd(asicdb.TableNextHopGroup{Name: args[0], Type: typ})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], uuid)
			return nil
		}),
	}
	add.Flags().String("type", asicdb.NextHopGroupTypeECMP, "group type, ecmp or protection")

	del := &cobra.Command{
		Use:   "del NAME",
		Short: "Delete a next hop group",
		Args:  cobra.ExactArgs(1),
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			return db.NextHopGroupDelByName(args[0])
		}),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List next hop groups",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, db *asicdb.DB, args []string) error {
			for _, nhg := range db.NextHopGroupList() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-10s %s\n", nhg.Name, nhg.Type, nhg.OID)
			}
			return nil
		}),
	}

	cmd.AddCommand(add, del, list)
	return cmd
}

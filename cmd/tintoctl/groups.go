package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	groupsCmd := &cobra.Command{Use: "groups", Short: "Group operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/groups")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	groupsCmd.AddCommand(listCmd)

	var name, status string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name required")
			}
			attrs := map[string]interface{}{"name": name}
			if status != "" {
				attrs["status"] = status
			}
			data, err := doPost(apiFlag+"/groups", attributesBody(attrs))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Group name (required)")
	createCmd.Flags().StringVarP(&status, "status", "t", "", "Status URI")
	groupsCmd.AddCommand(createCmd)

	getCmd := &cobra.Command{
		Use:   "get <group-id>",
		Short: "Show a group with its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/groups/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	groupsCmd.AddCommand(getCmd)

	joinCmd := &cobra.Command{
		Use:   "join <group-id>",
		Short: "Join a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPost(apiFlag+"/groups/"+args[0]+"/join", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	groupsCmd.AddCommand(joinCmd)

	leaveCmd := &cobra.Command{
		Use:   "leave <group-id>",
		Short: "Leave a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := doDelete(apiFlag + "/groups/" + args[0] + "/leave"); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "left group "+args[0])
			return nil
		},
	}
	groupsCmd.AddCommand(leaveCmd)

	membersCmd := &cobra.Command{
		Use:   "members <group-id>",
		Short: "List group members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/groups/" + args[0] + "/members")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	groupsCmd.AddCommand(membersCmd)

	var period string
	leaderboardCmd := &cobra.Command{
		Use:   "leaderboard <group-id>",
		Short: "Show the weekly leaderboard for a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := apiFlag + "/groups/" + args[0] + "/leaderboard"
			if period != "" {
				url += "?period=" + period
			}
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	leaderboardCmd.Flags().StringVarP(&period, "period", "p", "", "ISO week period (e.g. 2024-W05)")
	groupsCmd.AddCommand(leaderboardCmd)

	rootCmd.AddCommand(groupsCmd)
}

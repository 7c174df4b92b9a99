package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var email, password string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Create a session for the given identifier",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password required")
			}
			if sessionFlag == "" {
				return fmt.Errorf("--session required")
			}
			data, err := doPost(apiFlag+"/session", attributesBody(map[string]interface{}{
				"email":    email,
				"password": password,
			}))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "Login identifier (required)")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Password (required)")
	rootCmd.AddCommand(loginCmd)

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the user behind the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessionFlag == "" {
				return fmt.Errorf("--session required")
			}
			data, err := doGet(apiFlag + "/me")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(meCmd)
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkroom/cms/internal/core/ports"
)

var adminFlags struct {
	username string
	email    string
	password string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	Long: `Create an admin account directly in MongoDB. Usage:

	contentd create-admin --username root --email root@example.com --password 's3cret!'

Nothing is changed if the username already exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := open(ctx, false)
		if err != nil {
			return err
		}
		defer s.close(context.Background())

		if err := seedAdmin(ctx, s, ports.CreateUserInput{
			Username: adminFlags.username,
			Email:    adminFlags.email,
			Password: adminFlags.password,
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %q is ready\n", adminFlags.username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVar(&adminFlags.username, "username", "", "admin username")
	createAdminCmd.Flags().StringVar(&adminFlags.email, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminFlags.password, "password", "", "admin password")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

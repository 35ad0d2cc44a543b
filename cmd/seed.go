/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/webfolio/apiserver/config"
	"github.com/webfolio/apiserver/internal/db"
	"github.com/webfolio/apiserver/internal/store"
	"github.com/webfolio/apiserver/types"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var seedUsername string
var seedRole string

// seedCmd creates or updates the admin account. Accounts are only ever
// written through this command; the API itself has no registration.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or update the admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username := strings.TrimSpace(seedUsername)
		if username == "" {
			return errors.New("username is required")
		}

		fmt.Fprintf(os.Stdout, "Password for %q: ", username)
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stdout)
		if err != nil {
			return err
		}
		if len(password) == 0 {
			return errors.New("password must not be empty")
		}

		hashed, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		cfg := config.LoadConfig()
		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		repo := store.NewUserRepository(dbConn)

		existing, err := repo.GetByUsername(cmd.Context(), username)
		switch {
		case err == nil:
			if err := repo.UpdatePassword(cmd.Context(), existing.ID, string(hashed)); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Updated password for %q (id %d)\n", existing.Username, existing.ID)
		case errors.Is(err, store.ErrNotFound):
			created, err := repo.Create(cmd.Context(), types.User{
				Username:     username,
				Role:         seedRole,
				PasswordHash: string(hashed),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Created account %q (id %d)\n", created.Username, created.ID)
		default:
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedUsername, "username", "u", "admin", "account username")
	seedCmd.Flags().StringVarP(&seedRole, "role", "r", "admin", "account role")
}

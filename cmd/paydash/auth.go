package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the payments API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}
			client, err := initClient(sess)
			if err != nil {
				return err
			}

			if email == "" {
				return fmt.Errorf("email is required")
			}
			if password == "" {
				password, err = promptPassword()
				if err != nil {
					return err
				}
			}

			user, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted if omitted)")

	return cmd
}

func registerCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}
			client, err := initClient(sess)
			if err != nil {
				return err
			}

			if email == "" {
				return fmt.Errorf("email is required")
			}
			if password == "" {
				password, err = promptPassword()
				if err != nil {
					return err
				}
			}

			user, err := client.Register(cmd.Context(), name, email, password)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Printf("Account created for %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted if omitted)")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		RunE: func(_ *cobra.Command, _ []string) error {
			sess, err := initSession()
			if err != nil {
				return err
			}

			if !sess.Authenticated() {
				fmt.Println("Already signed out")
				return nil
			}

			if err := sess.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			fmt.Println("Signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := initAuthenticated()
			if err != nil {
				return err
			}

			user, err := client.Profile(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch profile: %w", err)
			}

			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("password is required")
	}

	return password, nil
}

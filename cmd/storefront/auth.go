package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nvaldebenito/storefront/internal/session/domain"
	sessionrest "github.com/nvaldebenito/storefront/internal/session/infra/rest"
)

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and store the session locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			user, token, err := app.auth.Login(app.ctx, args[0], password)
			if err != nil {
				return err
			}

			app.session.Login(user, token)
			fmt.Printf("Logged in as %s\n", color.GreenString("%s %s <%s>", user.FirstName, user.LastName, user.Email))
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func registerCmd() *cobra.Command {
	var req sessionrest.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Email = args[0]

			if req.Password == "" {
				pw, err := promptPassword("Password: ")
				if err != nil {
					return err
				}
				confirm, err := promptPassword("Confirm password: ")
				if err != nil {
					return err
				}
				req.Password, req.ConfirmPassword = pw, confirm
			} else {
				req.ConfirmPassword = req.Password
			}
			if req.Password != req.ConfirmPassword {
				return fmt.Errorf("passwords do not match")
			}

			user, err := app.auth.Register(app.ctx, req)
			if err != nil {
				return err
			}

			fmt.Printf("Account created for %s. Run 'storefront login %s' to sign in.\n", color.GreenString(user.Email), user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Telephone, "telephone", "", "contact telephone")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&req.BirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Street, "street", "", "shipping street")
	cmd.Flags().StringVar(&req.Number, "number", "", "shipping street number")
	cmd.Flags().StringVar(&req.Commune, "commune", "", "shipping commune")
	cmd.Flags().StringVar(&req.Region, "region", "", "shipping region")
	cmd.Flags().StringVar(&req.PostalCode, "postal-code", "", "shipping postal code")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and drop the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// best effort: local session goes away even if the server call fails
			if err := app.auth.Logout(app.ctx); err != nil {
				app.log.Warn("server logout failed", "err", err)
			}
			app.session.Logout()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := app.session.Current()
			if !sess.LoggedIn() {
				fmt.Println("Not logged in.")
				return nil
			}

			valid, err := app.auth.Verify(app.ctx)
			if err != nil {
				return err
			}
			status := color.GreenString("valid")
			if !valid {
				status = color.RedString("expired")
				app.session.Logout()
			}

			renderUser(*sess.User)
			fmt.Printf("Token: %s\n", status)
			return nil
		},
	}
}

func profileCmd() *cobra.Command {
	var firstName, lastName, email string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			patch := domain.UserPatch{}
			if cmd.Flags().Changed("first-name") {
				patch.FirstName = &firstName
			}
			if cmd.Flags().Changed("last-name") {
				patch.LastName = &lastName
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}

			if patch.FirstName == nil && patch.LastName == nil && patch.Email == nil {
				user, err := app.auth.Profile(app.ctx)
				if err != nil {
					return err
				}
				renderUser(user)
				return nil
			}

			user, err := app.auth.UpdateProfile(app.ctx, patch)
			if err != nil {
				return err
			}
			app.session.UpdateUser(patch)
			fmt.Println(color.GreenString("Profile updated."))
			renderUser(user)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	return cmd
}

func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimSpace(string(raw))
	if pw == "" {
		return "", fmt.Errorf("empty password")
	}
	return pw, nil
}

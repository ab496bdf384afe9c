package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hongminglow/hotel-admin/internal/apiclient"
	"github.com/hongminglow/hotel-admin/internal/gate"
	"github.com/hongminglow/hotel-admin/internal/models"
	"github.com/hongminglow/hotel-admin/internal/models/dto"
)

type loginResult struct {
	User models.User `json:"user"`
	Home string      `json:"home"`
}

func (sh *shell) loginCommand() *cobra.Command {
	var req dto.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				pw, err := readLine(cmd)
				if err != nil {
					return err
				}
				req.Password = pw
			}
			user, home, err := sh.app.Login(cmd.Context(), req)
			if errors.Is(err, apiclient.ErrAuth) {
				// A rejected login is not an expired session.
				sh.forget()
				return errors.New("invalid email or password")
			}
			if err != nil {
				return fail("log in", err)
			}
			return sh.printer(cmd).print(loginResult{User: user, Home: home},
				[]string{"ID", "NAME", "EMAIL", "ROLE", "HOME"},
				func(row func(...string)) {
					row(user.ID, user.Name, user.Email, user.Role.String(), home)
				})
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password (read from stdin when omitted)")
	return cmd
}

func (sh *shell) registerCommand() *cobra.Command {
	var (
		req  dto.RegisterRequest
		role string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				pw, err := readLine(cmd)
				if err != nil {
					return err
				}
				req.Password = pw
			}
			req.Role = models.Role(role)
			user, err := sh.app.Register(cmd.Context(), req)
			if err != nil {
				return fail("register", err)
			}
			return sh.printUsers(cmd, user)
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password (read from stdin when omitted)")
	cmd.Flags().StringVar(&role, "role", string(models.RoleGuest), "Guest, HotelManager, or Admin")
	return cmd
}

func (sh *shell) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := sh.app.Logout(cmd.Context()); err != nil {
				return fail("log out", err)
			}
			sh.forget()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (sh *shell) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sh.restore(cmd.Context())
			view := sh.app.Sessions.View()
			if !view.Authenticated() {
				sh.navigate(cmd.Context(), gate.LoginPath)
				return errRedirected
			}
			return sh.printUsers(cmd, *view.User)
		},
	}
}

func (sh *shell) printUsers(cmd *cobra.Command, user models.User) error {
	return sh.printer(cmd).print(user,
		[]string{"ID", "NAME", "EMAIL", "ROLE"},
		func(row func(...string)) {
			row(user.ID, user.Name, user.Email, user.Role.String())
		})
}

func readLine(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" && err != nil {
		return "", errors.New("password is required")
	}
	return line, nil
}

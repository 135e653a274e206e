package cli

import (
	"fmt"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"github.com/spf13/cobra"
)

func newLoginCommand(st *state) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login USERNAME",
		Short: "Sign in with a demo account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := st.session.Auth.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			return st.printSession(cmd, session)
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

func newRegisterCommand(st *state) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register USERNAME",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := st.session.Auth.Register(cmd.Context(), args[0], email, password)
			if err != nil {
				return err
			}
			return st.printSession(cmd, session)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.session.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			return st.printSession(cmd, st.session.Auth.Session())
		},
	}
}

func newWhoamiCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.printSession(cmd, st.session.Auth.Session())
		},
	}
}

func (st *state) printSession(cmd *cobra.Command, s models.AuthSession) error {
	w := cmd.OutOrStdout()
	if st.jsonOutput {
		return st.printJSON(w, s)
	}
	if !s.IsAuthenticated || s.User == nil {
		_, err := fmt.Fprintln(w, "Not signed in")
		return err
	}
	_, err := fmt.Fprintf(w, "Signed in as %s <%s> (%s, id %s)\n", s.User.Username, s.User.Email, s.User.Role, s.User.ID)
	return err
}

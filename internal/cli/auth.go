package cli

import (
	"errors"

	"dormshare-cli/internal/api"
	"dormshare-cli/internal/format"
	"dormshare-cli/internal/session"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if email == "" || password == "" {
				return errors.New("both --email and --password are required")
			}

			sess, err := app.client.Login(cmd.Context(), api.Credentials{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			if err := app.sessions.Save(session.Session{Token: sess.Token, User: &sess.User}); err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), sess.User, app.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var reg api.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if reg.Name == "" || reg.Email == "" || reg.Password == "" {
				return errors.New("--name, --email and --password are required")
			}

			sess, err := app.client.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}

			if err := app.sessions.Save(session.Session{Token: sess.Token, User: &sess.User}); err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), sess.User, app.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Password")
	cmd.Flags().StringVar(&reg.HostelRoom, "hostel-room", "", "Hostel room")
	cmd.Flags().StringVar(&reg.PhoneNumber, "phone", "", "Phone number")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			return app.sessions.Clear()
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user (fetched from the server)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if err := requireAuth(app); err != nil {
				return err
			}

			me, err := app.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), me, app.PrettyJSON)
		},
	}
}

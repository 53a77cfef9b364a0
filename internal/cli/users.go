package cli

import (
	"errors"

	"dormshare-cli/internal/api"
	"dormshare-cli/internal/format"
	"dormshare-cli/internal/session"

	"github.com/spf13/cobra"
)

func newMyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "my",
		Short: "Your listings and rentals",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "listings",
		Short: "Items you have listed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if err := requireAuth(app); err != nil {
				return err
			}
			items, err := app.client.MyListings(cmd.Context())
			if err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), items, app.PrettyJSON)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rentals",
		Short: "Items you are currently renting",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if err := requireAuth(app); err != nil {
				return err
			}
			items, err := app.client.MyRentals(cmd.Context())
			if err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), items, app.PrettyJSON)
		},
	})

	return cmd
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and update your profile",
	}
	cmd.AddCommand(newProfileShowCmd(app))
	cmd.AddCommand(newProfileUpdateCmd(app))
	cmd.AddCommand(newChangePasswordCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
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

func newProfileUpdateCmd(app *App) *cobra.Command {
	var p api.ProfilePatch

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if err := requireAuth(app); err != nil {
				return err
			}

			// Unchanged flags fall back to the current server-side values so
			// the full profile shape always goes on the wire.
			me, err := app.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				p.Name = me.Name
			}
			if !cmd.Flags().Changed("email") {
				p.Email = me.Email
			}
			if !cmd.Flags().Changed("hostel-room") {
				p.HostelRoom = me.HostelRoom
			}
			if !cmd.Flags().Changed("phone") {
				p.PhoneNumber = me.PhoneNumber
			}

			updated, err := app.client.UpdateProfile(cmd.Context(), p)
			if err != nil {
				return err
			}
			// Keep the stored snapshot in sync with the server echo.
			if sess, err := app.sessions.Load(); err == nil && sess.Token != "" {
				_ = app.sessions.Save(session.Session{Token: sess.Token, User: &updated})
			}
			return format.WriteJSON(cmd.OutOrStdout(), updated, app.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&p.Email, "email", "", "Email")
	cmd.Flags().StringVar(&p.HostelRoom, "hostel-room", "", "Hostel room")
	cmd.Flags().StringVar(&p.PhoneNumber, "phone", "", "Phone number")
	return cmd
}

func newChangePasswordCmd(app *App) *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if err := requireAuth(app); err != nil {
				return err
			}
			if current == "" || next == "" {
				return errors.New("both --current and --new are required")
			}
			return app.client.ChangePassword(cmd.Context(), current, next)
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	return cmd
}

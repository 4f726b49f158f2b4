package main

import (
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/spf13/cobra"
)

func (a *app) loginCmd() *cobra.Command {
	var req models.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.authService().Login(cmd.Context(), a.store, &req)
			if err != nil {
				return err
			}
			say(a.out, "Logged in as %s (user %d). Landing view: %s", view.Role, view.UserID, view.RedirectTo)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var (
		req     models.RegisterRequest
		picture string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a student or mentor account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			attachment, err := readAttachment(picture)
			if err != nil {
				return err
			}
			message, err := a.authService().Register(cmd.Context(), &req, attachment)
			if err != nil {
				return err
			}
			say(a.out, "%s", message)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&req.Name, "name", "", "Full name")
	flags.StringVar(&req.Email, "email", "", "Account email")
	flags.StringVar(&req.Password, "password", "", "Password (at least 6 characters)")
	flags.StringVar(&req.Role, "role", "student", "Account kind: student or mentor")
	flags.StringVar(&req.College, "college", "", "College")
	flags.StringVar(&req.Bio, "bio", "", "Short bio")
	flags.BoolVar(&req.IsPastStudent, "past-student", false, "Already graduated")
	flags.StringVar(&req.CurrentYear, "year", "", "Current year of study")
	flags.StringVar(&req.CurrentSem, "semester", "", "Current semester")
	flags.StringVar(&picture, "picture", "", "Path of a profile picture to upload")

	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.authService().Logout(a.store); err != nil {
				return err
			}
			say(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			sess := a.store.Get()
			if !sess.IsAuthenticated() {
				say(a.out, "Not logged in.")
				return nil
			}
			return render(a.out, map[string]any{
				"userId":  sess.UserID,
				"role":    sess.Role,
				"profile": sess.ProfileImagePath,
			})
		},
	}
}

func (a *app) dashboardCmd() *cobra.Command {
	return protect(&cobra.Command{
		Use:   "dashboard",
		Short: "Show the navigation of your role's dashboard",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return render(a.out, services.NewDashboardService().Dashboard(a.store.Get()))
		},
	})
}

func (a *app) profileCmd() *cobra.Command {
	cmd := protect(&cobra.Command{
		Use:   "profile",
		Short: "View or edit profiles",
	})

	show := &cobra.Command{
		Use:   "show [userId]",
		Short: "Show a profile, your own by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := a.store.Get()
			userID := sess.UserID
			if len(args) == 1 {
				id, err := argID(args, 0, "userId")
				if err != nil {
					return err
				}
				userID = id
			}
			user, err := a.profileService().GetProfile(cmd.Context(), sess, userID)
			if err != nil {
				return err
			}
			return render(a.out, user)
		},
	}

	var req models.ProfileUpdateRequest
	update := &cobra.Command{
		Use:   "update",
		Short: "Edit your own profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := a.store.Get()
			message, err := a.profileService().UpdateProfile(cmd.Context(), sess, sess.UserID, &req)
			if err != nil {
				return err
			}
			say(a.out, "%s", message)
			return nil
		},
	}
	flags := update.Flags()
	flags.StringVar(&req.Name, "name", "", "Full name")
	flags.StringVar(&req.Bio, "bio", "", "Short bio")
	flags.StringVar(&req.CurrentYear, "year", "", "Current year of study")
	flags.StringVar(&req.CurrentSem, "semester", "", "Current semester")
	flags.BoolVar(&req.IsPastStudent, "past-student", false, "Already graduated")
	_ = update.MarkFlagRequired("name")

	cmd.AddCommand(show, update)
	return cmd
}

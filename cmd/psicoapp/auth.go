package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print the session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := anonApp()
			if err != nil {
				return err
			}
			session, err := app.SignIn(email, password)
			if err != nil {
				return err
			}

			// The entities stay remote-of-record; the only thing worth
			// keeping between commands is the token pair.
			fmt.Printf("export PSICOAPP_ACCESS_TOKEN=%s\n", session.AccessToken)
			fmt.Printf("export PSICOAPP_REFRESH_TOKEN=%s\n", session.RefreshToken)
			fmt.Fprintf(cmd.ErrOrStderr(), "sesión iniciada como %s\n", session.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func signupCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new clinician account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := anonApp()
			if err != nil {
				return err
			}
			if err := app.SignUp(email, password); err != nil {
				return err
			}
			fmt.Println("cuenta creada; revise su correo si el proyecto exige confirmación")
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func recoverCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Request a password reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := anonApp()
			if err != nil {
				return err
			}
			if err := app.RequestPasswordReset(email); err != nil {
				return err
			}
			fmt.Println("correo de recuperación solicitado")
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := sessionApp()
			if err != nil {
				return err
			}
			if err := app.SignOut(); err != nil {
				return err
			}
			fmt.Println("sesión cerrada; limpie PSICOAPP_ACCESS_TOKEN del entorno")
			return nil
		},
	}
}

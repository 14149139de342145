package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/docorator/internal/session"
	"github.com/jonathan/docorator/internal/types"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	Long:  "Exchanges email and password for an access token and stores it in the config directory. The password is read from stdin when --password is not given.",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session token",
	RunE:  runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in user and token expiry",
	RunE:  runStatus,
}

var (
	loginEmail    string
	loginPassword string
	statusOffline bool
)

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (read from stdin if omitted)")
	if err := loginCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}

	statusCmd.Flags().BoolVar(&statusOffline, "offline", false, "Only inspect the stored token; do not contact the server")

	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	password := loginPassword
	if password == "" {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	token, err := a.client.Login(context.Background(), types.LoginRequest{Email: loginEmail, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := a.session.SetToken(token); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.out, "Logged in as %s\n", loginEmail)
	if claims, err := session.ParseClaims(token); err == nil && !claims.ExpiresAt.IsZero() {
		_, _ = fmt.Fprintf(a.out, "Session expires %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	return a.session.Logout()
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if _, ok := a.session.Token(); !ok {
		_, _ = fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	_, _ = fmt.Fprintf(a.out, "Token file: %s\n", a.store.Path())
	claims, err := a.session.Claims()
	if err != nil {
		_, _ = fmt.Fprintf(a.out, "Token is not a readable JWT: %v\n", err)
	} else {
		if claims.Subject != "" {
			_, _ = fmt.Fprintf(a.out, "Subject:    %s\n", claims.Subject)
		}
		switch {
		case claims.ExpiresAt.IsZero():
			_, _ = fmt.Fprintln(a.out, "Expires:    never")
		case claims.Expired(time.Now()):
			_, _ = fmt.Fprintf(a.out, "Expired:    %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
		default:
			_, _ = fmt.Fprintf(a.out, "Expires:    %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
		}
	}

	if statusOffline {
		return nil
	}
	me, err := a.client.Me(context.Background())
	if err != nil {
		if errors.Is(err, session.ErrUnauthorized) {
			return err
		}
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	name := me.FullName
	if name == "" {
		name = me.Email
	}
	_, _ = fmt.Fprintf(a.out, "User:       %s <%s>\n", name, me.Email)
	if me.Profession != "" {
		_, _ = fmt.Fprintf(a.out, "Profession: %s\n", me.Profession)
	}
	return nil
}

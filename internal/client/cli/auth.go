package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/socialfeed/internal/client/models"
	"github.com/dmitrijs2005/socialfeed/internal/common"
)

// Input helpers behind variables so tests can replace them.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getConfirm    = GetConfirm
)

func (a *App) prompt(text string) (string, error) {
	return getSimpleText(a.reader, text, os.Stdout)
}

func (a *App) confirm(text string) (bool, error) {
	return getConfirm(a.reader, text, os.Stdout)
}

// Register prompts for username, email and password and creates the
// account. The new session is kept for this run only.
func (a *App) Register(ctx context.Context) error {
	username, err := a.prompt("Username")
	if err != nil {
		return err
	}
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Register(ctx, models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	a.signedIn(ctx, s)
	a.println(styles.Success.Render("Welcome, " + s.Username + "!"))
	return a.render(ctx)
}

// Login prompts for credentials and whether to stay signed in across runs.
func (a *App) Login(ctx context.Context) error {
	username, err := a.prompt("Username")
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := a.confirm("Remember me?")
	if err != nil {
		return err
	}

	s, err := a.authService.Login(ctx, models.LoginRequest{
		Username: username,
		Password: string(password),
	}, remember)
	if err != nil {
		return err
	}

	a.signedIn(ctx, s)
	a.println(styles.Success.Render("Logged in as " + s.Username))
	return a.render(ctx)
}

func (a *App) signedIn(ctx context.Context, s *models.Session) {
	a.session = s
	a.nav.OnLogin(ctx)
}

// Logout always ends the local session. A failing remote call is logged by
// the client and does not keep the user signed in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Warn(ctx, "remote logout failed, local session cleared", "error", err)
	}
	a.session = nil
	a.posts = make(map[int64]*models.Post)
	a.nav.OnLogout(ctx)
	a.println("Logged out.")
	return nil
}

// SwitchAuth toggles between the login and register forms.
func (a *App) SwitchAuth(ctx context.Context) error {
	mode := a.nav.ToggleAuthMode()
	if mode == models.AuthRegister {
		a.println("Create an account with 'register'.")
	} else {
		a.println("Sign in with 'login'.")
	}
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	if a.session == nil {
		a.println("Not logged in.")
		return nil
	}
	line := a.session.Username
	if a.session.Email != "" {
		line += " <" + a.session.Email + ">"
	}
	if a.session.IsSuperuser {
		line += " [admin]"
	}
	a.println(line)
	return nil
}

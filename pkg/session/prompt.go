package session

import (
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Credentials is what the login form collects.
type Credentials struct {
	User     string
	Remember bool
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with accessible mode when stdin is not a TTY.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// LoginForm builds the login form. c supplies the initial values and
// receives the answers when the form runs.
func LoginForm(c *Credentials) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User name").
				Placeholder(os.Getenv("USER")).
				Value(&c.User).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return ErrEmptyUser
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Remember me on this machine?").
				Description("No keeps you logged in until the next reboot").
				Value(&c.Remember).
				Affirmative("Yes").
				Negative("No"),
		),
	)
}

// PromptLogin runs the login form and records the result.
func (g *Gate) PromptLogin(remember bool) (Credentials, error) {
	c := Credentials{Remember: remember}
	if err := LoginForm(&c).Run(); err != nil {
		return c, err
	}
	return c, g.Login(c.User, c.Remember)
}

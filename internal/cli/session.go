package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/epeers/fundsight/internal/state"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

type loginCmd struct {
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "sign in and store the session token" }
func (*loginCmd) Usage() string {
	return `fundsight login -email <email> [-password <password>]

  Without -password the password is read from the first line of stdin.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Account email.")
	f.StringVar(&c.password, "password", "", "Account password. Read from stdin when empty.")
}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	password := c.password
	if password == "" {
		var err error
		if password, err = readPassword(os.Stdin); err != nil {
			log.Errorf("Failed to read password: %v", err)
			return subcommands.ExitUsageError
		}
	}

	return withApp(ctx, func(a *app) error {
		if err := a.store.Login(ctx, c.email, password); err != nil {
			if msg := a.store.Snapshot().Session.Error; msg != "" {
				return errors.New(msg)
			}
			return err
		}
		fmt.Printf("Signed in as %s\n", a.store.Snapshot().Session.User.DisplayName())
		return nil
	})
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "invalidate and forget the stored session" }
func (*logoutCmd) Usage() string {
	return `fundsight logout
`
}

func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (*logoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		err := a.store.Logout(ctx)
		if errors.Is(err, state.ErrRemoteLogout) {
			// Local session is already gone
			fmt.Println("Signed out locally; the server could not be reached")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	})
}

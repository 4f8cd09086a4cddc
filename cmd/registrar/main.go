package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yigit/registrar/internal/pkg/logger"
	"github.com/yigit/registrar/internal/registrar"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errEmptyPassword = errors.New("password must not be empty")
)

// application is the part of registrar.App the commands use
type application interface {
	Migrate(ctx context.Context) error
	Seed(ctx context.Context) error
	Run(ctx context.Context, in io.Reader, out io.Writer) error
	ResetPassword(ctx context.Context, username, password string) error
	Close()
}

type opener func(ctx context.Context, configPath string) (application, error)

func openRegistrar(ctx context.Context, configPath string) (application, error) {
	app, err := registrar.New(ctx, configPath)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// withApp opens the application for one command and closes it afterwards
func withApp(open opener, fn func(c *cli.Context, app application) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		app, err := open(c.Context, c.String("config"))
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(c, app)
	}
}

func newCLIApp(open opener, stdin io.Reader) *cli.App {
	run := withApp(open, func(c *cli.Context, app application) error {
		return app.Run(c.Context, stdin, c.App.Writer)
	})

	return &cli.App{
		Name:  "registrar",
		Usage: "University management system",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"REGISTRAR_CONFIG"},
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "start the interactive menu (default)",
				Action: run,
			},
			{
				Name:  "migrate",
				Usage: "apply pending database migrations",
				Action: withApp(open, func(c *cli.Context, app application) error {
					return app.Migrate(c.Context)
				}),
			},
			{
				Name:  "seed",
				Usage: "create the default admin account and departments",
				Action: withApp(open, func(c *cli.Context, app application) error {
					return app.Seed(c.Context)
				}),
			},
			{
				Name:  "reset-password",
				Usage: "set a new password for an account; the password is prompted",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "login name of the account"},
				},
				Action: withApp(open, func(c *cli.Context, app application) error {
					fmt.Fprint(c.App.Writer, "Enter password: ")
					pwd, err := readPasswordFunc(int(syscall.Stdin))
					fmt.Fprintln(c.App.Writer)
					if err != nil {
						return fmt.Errorf("error reading password: %w", err)
					}
					if len(pwd) == 0 {
						return errEmptyPassword
					}
					if err := app.ResetPassword(c.Context, c.String("username"), string(pwd)); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "Password updated successfully!")
					return nil
				}),
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLIApp(openRegistrar, os.Stdin).RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}

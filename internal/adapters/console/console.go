// Package console runs the interactive chat front end: discovery of teams
// and players, customer login and the squad builder.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/term"

	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/domain/league"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/squad"
	"github.com/okian/nsl/pkg/logger"
)

// Backend is the part of the service the console drives.
type Backend interface {
	Teams() []league.Team
	Team(id string) (league.Team, error)
	FindPlayers(ctx context.Context, q service.PlayerQuery) ([]model.Player, error)
	NationalityCounts(ctx context.Context) ([]service.NationalityCount, error)

	FindCustomer(ctx context.Context, email string) (model.Customer, bool, error)
	VerifyPIN(ctx context.Context, c model.Customer, pin string, attempt int) error
	Register(ctx context.Context, name, email, pin string) (model.Customer, error)

	NewSession(ctx context.Context, customerID string) (*squad.Session, error)
}

// errExit ends the conversation from any menu.
var errExit = errors.New("exit requested")

// Console is one interactive conversation.
type Console struct {
	backend Backend
	in      *bufio.Scanner
	out     io.Writer
	secret  func(prompt string) (string, error)
	logger  logger.Logger
	id      string
}

// Option applies a configuration option to the Console.
type Option func(*Console)

// WithOutput sets where prompts and tables are written.
func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		if w != nil {
			c.out = w
		}
	}
}

// WithLogger sets the console logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSecretReader overrides how PINs are read.
func WithSecretReader(fn func(prompt string) (string, error)) Option {
	return func(c *Console) {
		if fn != nil {
			c.secret = fn
		}
	}
}

// New creates a console reading from in. When in is a terminal, PINs are
// read without echo.
func New(backend Backend, in io.Reader, opts ...Option) *Console {
	c := &Console{
		backend: backend,
		in:      bufio.NewScanner(in),
		out:     os.Stdout,
		logger:  logger.Nop(),
		id:      uuid.NewString(),
	}
	c.secret = c.readLine
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.secret = func(prompt string) (string, error) {
			c.printf("%s", prompt)
			b, err := term.ReadPassword(int(f.Fd()))
			c.println()
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.String("session_id", c.id))
	return c
}

// Run drives the conversation until the customer exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	c.logger.Info(ctx, "console session started")
	err := c.run(ctx)
	if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
		c.println("\nThank you, Goodbye!")
		c.logger.Info(ctx, "console session ended")
		return nil
	}
	if err != nil {
		c.logger.Error(ctx, "console session failed", logger.Error(err))
	}
	return err
}

func (c *Console) run(ctx context.Context) error {
	c.println(welcomeBanner)
	name, err := c.readLine("Enter your name here: ")
	if err != nil {
		return err
	}
	c.printf("\nFantastic %s! I'm so glad to meet you!\n%s\n", name, strings.Repeat("-", 54))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.println(mainMenu)
		choice, err := c.choose("Input the number corresponding to your choice: ", "Please enter a valid choice.", "1", "2")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = c.discover(ctx, name)
		case "2":
			err = c.fantasy(ctx, name)
		}
		if err != nil {
			return err
		}
	}
}

// readLine prints prompt and returns the next trimmed input line.
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// choose repeats prompt until one of valid is typed.
func (c *Console) choose(prompt, invalid string, valid ...string) (string, error) {
	for {
		in, err := c.readLine(prompt)
		if err != nil {
			return "", err
		}
		for _, v := range valid {
			if in == v {
				return in, nil
			}
		}
		c.println(invalid)
	}
}

// yesNo asks question until yes or no is answered.
func (c *Console) yesNo(question string) (bool, error) {
	for {
		in, err := c.readLine(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(in) {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}
		c.println("Please enter 'yes' or 'no'.")
	}
}

// postSearch returns nil to go back to the main menu, errExit to leave.
func (c *Console) postSearch() error {
	choice, err := c.choose("Would you like to return to the main menu (1) or exit (2)? ", "Invalid choice. Please enter 1 or 2.", "1", "2")
	if err != nil {
		return err
	}
	if choice == "2" {
		return errExit
	}
	return nil
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(args ...any) {
	_, _ = fmt.Fprintln(c.out, args...)
}

const welcomeBanner = `Hello! Welcome to the NSL Stats Chatbot!
-------------------------------------------------------
I am here to help you learn more about the players and teams of the Northern Super League.
Tell me your name first so I can get to know you better!`

const mainMenu = `
What can I help you with today?
1. Discover the teams and players
2. Start a Fantasy Team`

// Command adduser registers a user directly in the database.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/expensetracker/expense-service/internal/core/domain"
	"github.com/expensetracker/expense-service/internal/core/service"
	"github.com/expensetracker/expense-service/internal/infrastructure/db/sqlstore"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbURI := fs.String("db", os.Getenv("DB_URI"), "Database URI, postgres://… or sqlite://<path> (default $DB_URI)")
	cost := fs.Int("cost", 10, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> [-password <password>] [-db <uri>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user")
	}
	if *dbURI == "" {
		return fmt.Errorf("missing database: set -db or DB_URI")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	db, dialect, err := sqlstore.Open(ctx, *dbURI)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := sqlstore.Migrate(ctx, db, dialect); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	users := service.NewUserService(sqlstore.NewStore(db), service.NewCredentials("", *cost), nil, zerolog.Nop())
	user, err := users.Create(ctx, *username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return fmt.Errorf("user %s already exists", *username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", user.Name, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

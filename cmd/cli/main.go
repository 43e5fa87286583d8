package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/amirasaad/minibank/infra"
	"github.com/amirasaad/minibank/pkg/config"
	acctsvc "github.com/amirasaad/minibank/pkg/service/account"
	usersvc "github.com/amirasaad/minibank/pkg/service/user"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <username>")
	fmt.Println("  create <user_id> <name>")
	fmt.Println("  deposit <user_id> <account_id> <amount>")
	fmt.Println("  withdraw <user_id> <account_id> <amount>")
	fmt.Println("  balance <user_id> <account_id>")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	uow := infra.NewGormUoW(db)
	users := usersvc.New(uow, logger)
	accounts := acctsvc.New(uow, logger)
	ctx := context.Background()

	switch os.Args[1] {
	case "register":
		if len(os.Args) < 3 {
			usage()
			return
		}
		password := promptPassword("Password: ")
		confirm := promptPassword("Confirm password: ")
		if err := users.Register(ctx, os.Args[2], password, confirm); err != nil {
			color.Red("Error registering user: %v", err)
			return
		}
		color.Green("User %s registered", os.Args[2])
	case "create":
		if len(os.Args) < 4 {
			usage()
			return
		}
		password := promptPassword("Account password (6 digits): ")
		created, err := accounts.Create(ctx, mustUUID(os.Args[2]), os.Args[3], password)
		if err != nil {
			color.Red("Error creating account: %v", err)
			return
		}
		color.Green("Account created: ID=%s Name=%s", created.ID, created.Name)
	case "deposit":
		if len(os.Args) < 5 {
			usage()
			return
		}
		userID, accountID := mustUUID(os.Args[2]), mustUUID(os.Args[3])
		amount := mustAmount(os.Args[4])
		if err := accounts.Deposit(ctx, userID, accountID, amount); err != nil {
			color.Red("Error depositing: %v", err)
			return
		}
		printBalance(ctx, accounts, userID, accountID)
	case "withdraw":
		if len(os.Args) < 5 {
			usage()
			return
		}
		userID, accountID := mustUUID(os.Args[2]), mustUUID(os.Args[3])
		amount := mustAmount(os.Args[4])
		password := promptPassword("Account password: ")
		if err := accounts.Withdraw(ctx, userID, accountID, amount, password); err != nil {
			color.Red("Error withdrawing: %v", err)
			return
		}
		printBalance(ctx, accounts, userID, accountID)
	case "balance":
		if len(os.Args) < 4 {
			usage()
			return
		}
		printBalance(ctx, accounts, mustUUID(os.Args[2]), mustUUID(os.Args[3]))
	default:
		fmt.Println("Unknown command:", os.Args[1])
		usage()
	}
}

func printBalance(ctx context.Context, accounts *acctsvc.Service, userID, accountID uuid.UUID) {
	balance, err := accounts.GetBalance(ctx, userID, accountID)
	if err != nil {
		color.Red("Error fetching balance: %v", err)
		return
	}
	color.Green("Account %s balance: %.2f", accountID, balance)
}

func promptPassword(label string) string {
	fmt.Print(label)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		color.Red("Failed to read password: %v", err)
		os.Exit(1)
	}
	return string(password)
}

func mustUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		color.Red("Invalid id %q", s)
		os.Exit(1)
	}
	return id
}

func mustAmount(s string) float64 {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		color.Red("Invalid amount %q", s)
		os.Exit(1)
	}
	return amount
}

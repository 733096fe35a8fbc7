// Command cli seeds and inspects the ledger from a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/ebank/ledger/infra/initializer"
	"github.com/ebank/ledger/pkg/app"
	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/pkg/domain/account"
	"github.com/ebank/ledger/pkg/service/auth"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  seed                      create demo customers, accounts and operations
  accounts                  list every account
  history <account_id> [page]
                            print the account history (all of it, or one page)
  reconcile <account_id>    compare the stored balance with the operation log
  token [-scope USER,ADMIN] [-sub name]
                            sign a bearer token`

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	headColor = color.New(color.FgCyan, color.Bold)
)

func main() {
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	cfg, err := config.Load(".env")
	if err != nil {
		errColor.Fprintln(os.Stderr, "Failed to load configuration:", err) //nolint:errcheck
		return 1
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		errColor.Fprintln(os.Stderr, "Failed to initialize dependencies:", err) //nolint:errcheck
		return 1
	}
	defer deps.Close() //nolint:errcheck

	if err := run(context.Background(), app.New(deps, cfg), args, os.Stdout); err != nil {
		errColor.Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
		return 1
	}
	return 0
}

var errUsage = errors.New("invalid arguments")

func run(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	switch args[0] {
	case "seed":
		return seed(ctx, a, out, rand.Float64)
	case "accounts":
		return listAccounts(ctx, a, out)
	case "history":
		if len(args) < 2 {
			return fmt.Errorf("%w: history <account_id> [page]", errUsage)
		}
		if len(args) > 2 {
			page, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("%w: page must be a number", errUsage)
			}
			return historyPage(ctx, a, out, args[1], page)
		}
		return history(ctx, a, out, args[1])
	case "reconcile":
		if len(args) < 2 {
			return fmt.Errorf("%w: reconcile <account_id>", errUsage)
		}
		return reconcile(ctx, a, out, args[1])
	case "token":
		return token(a, out, args[1:])
	default:
		fmt.Fprintln(out, usage) //nolint:errcheck
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

var demoCustomers = []string{"khadija", "yassir", "oma"}

// seed creates one current and one saving account per demo customer and
// records ten random operations on each. Debits refused by the floor are
// reported and skipped.
func seed(ctx context.Context, a *app.App, out io.Writer, rnd func() float64) error {
	money := func(limit float64) decimal.Decimal {
		return decimal.NewFromFloat(rnd() * limit).Round(2)
	}
	for _, name := range demoCustomers {
		c, err := a.CustomerService.Save(ctx, name, name+"@gmail.com")
		if err != nil {
			return err
		}
		okColor.Fprintf(out, "customer %d %s\n", c.ID, c.Name) //nolint:errcheck

		current, err := a.AccountService.CreateCurrentAccount(ctx, money(90000), decimal.NewFromInt(9000), c.ID)
		if err != nil {
			return err
		}
		saving, err := a.AccountService.CreateSavingAccount(ctx, money(120000), decimal.NewFromFloat(5.5), c.ID)
		if err != nil {
			return err
		}

		for _, acc := range []account.Account{current, saving} {
			fmt.Fprintf(out, "  %s %s\n", acc.Kind, acc.ID) //nolint:errcheck
			for i := range 10 {
				amount := money(12000).Add(decimal.NewFromInt(1))
				if i%2 == 0 {
					_, err = a.AccountService.Credit(ctx, acc.ID, amount, "Credit")
				} else {
					_, err = a.AccountService.Debit(ctx, acc.ID, amount, "Debit")
				}
				if errors.Is(err, account.ErrInsufficientBalance) {
					warnColor.Fprintf(out, "    skipped debit of %s: %v\n", amount, err) //nolint:errcheck
					continue
				}
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func listAccounts(ctx context.Context, a *app.App, out io.Writer) error {
	accs, err := a.AccountService.ListAccounts(ctx)
	if err != nil {
		return err
	}
	headColor.Fprintf(out, "%-36s  %-2s  %8s  %14s  %s\n", "ID", "KD", "CUSTOMER", "BALANCE", "CUR") //nolint:errcheck
	for _, acc := range accs {
		fmt.Fprintf(out, "%-36s  %-2s  %8d  %14s  %s\n", //nolint:errcheck
			acc.ID, acc.Kind, acc.CustomerID, acc.Balance.StringFixed(2), acc.Currency)
	}
	return nil
}

func history(ctx context.Context, a *app.App, out io.Writer, id string) error {
	ops, err := a.AccountService.GetAccountHistory(ctx, id)
	if err != nil {
		return err
	}
	printOperations(out, ops)
	return nil
}

func historyPage(ctx context.Context, a *app.App, out io.Writer, id string, page int) error {
	h, err := a.AccountService.GetAccountHistoryPage(ctx, id, page, a.Config.Ledger.PageSize)
	if err != nil {
		return err
	}
	headColor.Fprintf(out, "%s %s balance %s page %d/%d (%d operations)\n", //nolint:errcheck
		h.Kind, h.AccountID, h.Balance.StringFixed(2), h.CurrentPage, h.TotalPages, h.TotalCount)
	printOperations(out, h.Operations)
	return nil
}

func printOperations(out io.Writer, ops []account.Operation) {
	for _, op := range ops {
		c := okColor
		if op.Type == account.Debit {
			c = warnColor
		}
		c.Fprintf(out, "%6d  %s  %-6s  %12s  %s\n", //nolint:errcheck
			op.ID, op.Date.Format("2006-01-02 15:04:05"), op.Type, op.Amount.StringFixed(2), op.Description)
	}
}

func reconcile(ctx context.Context, a *app.App, out io.Writer, id string) error {
	r, err := a.AccountService.Reconcile(ctx, id)
	if err != nil {
		return err
	}
	c := okColor
	status := "consistent"
	if !r.Consistent() {
		c, status = errColor, "drift "+r.Drift.String()
	}
	c.Fprintf(out, "%s stored=%s replayed=%s operations=%d %s\n", //nolint:errcheck
		r.AccountID, r.Stored.StringFixed(2), r.Replayed.StringFixed(2), r.Operations, status)
	return nil
}

func token(a *app.App, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(out)
	scope := fs.String("scope", auth.ScopeUser, "comma separated scopes")
	sub := fs.String("sub", "cli", "token subject")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	var scopes []string
	for _, s := range strings.Split(*scope, ",") {
		if s = strings.TrimSpace(strings.ToUpper(s)); s != "" {
			scopes = append(scopes, s)
		}
	}
	t, err := auth.New(a.Config.Auth, a.Deps.Logger).GenerateToken(*sub, scopes...)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, t) //nolint:errcheck
	return nil
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/prn-tf/barledger/internal/domain"
	"github.com/prn-tf/barledger/internal/manager"
	"github.com/prn-tf/barledger/internal/service"
)

// maxLoginAttempts bounds the login prompt.
const maxLoginAttempts = 3

// errQuit ends the command loop.
var errQuit = errors.New("quit")

// shell is the presentation layer: it reads commands, calls the manager and
// prints results. It holds no business rules beyond input parsing.
type shell struct {
	mgr            *manager.Manager
	in             *bufio.Scanner
	out            io.Writer
	metricsEnabled bool
	logger         zerolog.Logger
}

func newShell(mgr *manager.Manager, in io.Reader, out io.Writer, metricsEnabled bool, logger zerolog.Logger) *shell {
	return &shell{
		mgr:            mgr,
		in:             bufio.NewScanner(in),
		out:            out,
		metricsEnabled: metricsEnabled,
		logger:         logger.With().Str("component", "shell").Logger(),
	}
}

// Run asks for credentials, then executes commands until quit or EOF.
func (s *shell) Run(ctx context.Context) error {
	if err := s.login(ctx); err != nil {
		return err
	}

	fmt.Fprintln(s.out, `Type "help" for commands.`)
	for {
		fmt.Fprint(s.out, "> ")
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := s.exec(ctx, strings.Fields(line))
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, service.ErrStorageUnavailable), errors.Is(err, manager.ErrClosed):
			return err
		default:
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

func (s *shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) login(ctx context.Context) error {
	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		fmt.Fprint(s.out, "Username: ")
		username, ok := s.readLine()
		if !ok {
			return errors.New("login aborted")
		}
		fmt.Fprint(s.out, "Password: ")
		password, ok := s.readLine()
		if !ok {
			return errors.New("login aborted")
		}

		valid, err := s.mgr.Verify(ctx, username, password)
		if err != nil {
			return err
		}
		if valid {
			fmt.Fprintf(s.out, "Welcome, %s.\n", username)
			return nil
		}
		fmt.Fprintln(s.out, "Invalid credentials.")
	}
	return errors.New("too many failed login attempts")
}

func (s *shell) exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "help", "?":
		s.printHelp()
		return nil
	case "quit", "exit":
		return errQuit
	case "drink", "drinks":
		return s.execDrink(ctx, args[1:])
	case "tx", "transaction", "transactions":
		return s.execTransaction(ctx, args[1:])
	case "balance":
		return s.printBalance(ctx)
	case "summary":
		return s.printSummary(ctx)
	case "user":
		return s.execUser(ctx, args[1:])
	case "stats":
		return s.printStats()
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  drink list
  drink add <name> <quantity> <price>
  drink update <id> <quantity> <price>
  drink delete <id>
  tx record <purchase|deposit> <amount> [description]
  tx list
  balance
  summary
  user add <username> <password>
  stats
  quit`)
}

// =============================================================================
// Drinks
// =============================================================================

func (s *shell) execDrink(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return s.listDrinks(ctx)
	}

	switch args[0] {
	case "list":
		return s.listDrinks(ctx)

	case "add":
		// The name may contain spaces: everything before quantity and price.
		if len(args) < 4 {
			return errors.New("usage: drink add <name> <quantity> <price>")
		}
		n := len(args)
		name := strings.Join(args[1:n-2], " ")
		if name == "" {
			return errors.New("drink name must not be empty")
		}
		quantity, price, err := parseStock(args[n-2], args[n-1])
		if err != nil {
			return err
		}
		id, err := s.mgr.AddDrink(ctx, name, quantity, price)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Added drink #%d.\n", id)
		return nil

	case "update":
		if len(args) != 4 {
			return errors.New("usage: drink update <id> <quantity> <price>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		quantity, price, err := parseStock(args[2], args[3])
		if err != nil {
			return err
		}
		if err := s.mgr.UpdateDrink(ctx, id, quantity, price); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Updated drink #%d.\n", id)
		return nil

	case "delete", "rm":
		if len(args) != 2 {
			return errors.New("usage: drink delete <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := s.mgr.DeleteDrink(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Deleted drink #%d.\n", id)
		return nil
	}

	return fmt.Errorf("unknown drink command %q", args[0])
}

func (s *shell) listDrinks(ctx context.Context) error {
	drinks, err := s.mgr.ListDrinks(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tPRICE")
	for _, d := range drinks {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", d.ID, d.Name, d.Quantity, domain.FormatAmount(d.Price))
	}
	return tw.Flush()
}

// =============================================================================
// Transactions
// =============================================================================

func (s *shell) execTransaction(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return s.listTransactions(ctx)
	}

	switch args[0] {
	case "list":
		return s.listTransactions(ctx)

	case "record", "add":
		if len(args) < 3 {
			return errors.New("usage: tx record <purchase|deposit> <amount> [description]")
		}
		kind, err := domain.ParseTransactionKind(args[1])
		if err != nil {
			return err
		}
		amount, err := domain.ParseAmount(args[2])
		if err != nil {
			return err
		}
		description := strings.Join(args[3:], " ")

		id, err := s.mgr.RecordTransaction(ctx, kind, amount, description)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Recorded transaction #%d.\n", id)
		return s.printBalance(ctx)
	}

	return fmt.Errorf("unknown tx command %q", args[0])
}

func (s *shell) listTransactions(ctx context.Context) error {
	txs, err := s.mgr.ListTransactions(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tKIND\tAMOUNT\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			tx.ID,
			tx.Timestamp.Format(domain.TimestampLayout),
			tx.Kind,
			domain.FormatAmount(tx.Amount),
			tx.Description,
		)
	}
	return tw.Flush()
}

func (s *shell) printBalance(ctx context.Context) error {
	balance, err := s.mgr.Balance(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Balance: %s\n", domain.FormatAmount(balance))
	return nil
}

func (s *shell) printSummary(ctx context.Context) error {
	summary, err := s.mgr.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Transactions: %d\n", summary.Count)
	fmt.Fprintf(s.out, "Deposits:     %s\n", domain.FormatAmount(summary.Deposits))
	fmt.Fprintf(s.out, "Purchases:    %s\n", domain.FormatAmount(summary.Purchases))
	fmt.Fprintf(s.out, "Balance:      %s\n", domain.FormatAmount(summary.Balance))
	return nil
}

// =============================================================================
// Users and stats
// =============================================================================

func (s *shell) execUser(ctx context.Context, args []string) error {
	if len(args) != 3 || args[0] != "add" {
		return errors.New("usage: user add <username> <password>")
	}

	created, err := s.mgr.Register(ctx, args[1], args[2])
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("user %q already exists", args[1])
	}
	fmt.Fprintf(s.out, "Created user %q.\n", args[1])
	return nil
}

func (s *shell) printStats() error {
	if !s.metricsEnabled {
		fmt.Fprintln(s.out, "Metrics are disabled.")
		return nil
	}

	families, err := s.mgr.Metrics().Registry().Gather()
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(families))
	for _, mf := range families {
		lines = append(lines, formatFamily(mf)...)
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(s.out, line)
	}
	return nil
}

// formatFamily renders counters and gauges as "name{label=value} number".
func formatFamily(mf *dto.MetricFamily) []string {
	var lines []string
	for _, metric := range mf.GetMetric() {
		var value float64
		switch mf.GetType() {
		case dto.MetricType_COUNTER:
			value = metric.GetCounter().GetValue()
		case dto.MetricType_GAUGE:
			value = metric.GetGauge().GetValue()
		default:
			continue
		}

		labels := make([]string, 0, len(metric.GetLabel()))
		for _, lp := range metric.GetLabel() {
			labels = append(labels, lp.GetName()+"="+lp.GetValue())
		}
		name := mf.GetName()
		if len(labels) > 0 {
			name += "{" + strings.Join(labels, ",") + "}"
		}
		lines = append(lines, fmt.Sprintf("%s %s", name, strconv.FormatFloat(value, 'f', -1, 64)))
	}
	return lines
}

// =============================================================================
// Parsing helpers
// =============================================================================

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseStock(quantityArg, priceArg string) (int64, decimal.Decimal, error) {
	quantity, err := strconv.ParseInt(quantityArg, 10, 64)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("invalid quantity %q", quantityArg)
	}
	price, err := domain.ParseAmount(priceArg)
	if err != nil {
		return 0, decimal.Zero, err
	}
	return quantity, price, nil
}

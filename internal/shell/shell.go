// Package shell implements the interactive command loop: register/login/quit
// at the top level, add/list/summary/save/load/logout inside an account
// session. Commands and arguments are read one per line; every failure is
// reported as a message and the loop continues.
package shell

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

	"spendbook/internal/account"
	"spendbook/internal/core"
	"spendbook/internal/log"
	"spendbook/internal/snapshot"
	"spendbook/internal/taxonomy"
)

type Shell struct {
	rawIn   io.Reader
	scanner *bufio.Scanner
	out     io.Writer
	dir     *account.Directory
	store   snapshot.Store
	tax     *taxonomy.Taxonomy
	logger  *log.Logger
}

func New(in io.Reader, out io.Writer, dir *account.Directory, store snapshot.Store, tax *taxonomy.Taxonomy, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Shell{
		rawIn:   in,
		scanner: bufio.NewScanner(in),
		out:     out,
		dir:     dir,
		store:   store,
		tax:     tax,
		logger:  logger.WithComponent(log.ComponentShell),
	}
}

// Run processes top-level commands until quit or end of input. Only input
// read errors are returned; command failures are printed and the loop keeps
// going.
func (s *Shell) Run(ctx context.Context) error {
	for {
		action, err := s.prompt("Choose an action: register, login, quit: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		switch action {
		case "register":
			s.handleRegister()
		case "login":
			s.handleLogin(ctx)
		case "quit":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid action.")
		}
	}
}

func (s *Shell) handleRegister() {
	username, err := s.prompt("Enter username: ")
	if err != nil {
		return
	}
	password, err := s.promptPassword("Enter password: ")
	if err != nil {
		return
	}

	if _, err := s.dir.Register(username, password); err != nil {
		switch {
		case errors.Is(err, account.ErrDuplicateUsername):
			fmt.Fprintln(s.out, "Username already taken.")
		case errors.Is(err, account.ErrInvalidUsername):
			fmt.Fprintln(s.out, "Invalid username.")
		case errors.Is(err, account.ErrEmptyPassword):
			fmt.Fprintln(s.out, "Password cannot be empty.")
		default:
			fmt.Fprintf(s.out, "Error registering user: %v\n", err)
		}
		s.logger.Warn("Registration failed", log.FieldOperation, log.OpRegister,
			log.FieldUsername, username, log.FieldError, err)
		return
	}

	fmt.Fprintln(s.out, "User registered successfully.")
	s.logger.Info("User registered", log.FieldOperation, log.OpRegister, log.FieldUsername, username)
}

func (s *Shell) handleLogin(ctx context.Context) {
	username, err := s.prompt("Enter username: ")
	if err != nil {
		return
	}
	password, err := s.promptPassword("Enter password: ")
	if err != nil {
		return
	}

	a, err := s.dir.Authenticate(username, password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrUnknownUser):
			fmt.Fprintln(s.out, "Unknown username.")
		case errors.Is(err, account.ErrWrongPassword):
			fmt.Fprintln(s.out, "Wrong password.")
		default:
			fmt.Fprintf(s.out, "Error logging in: %v\n", err)
		}
		s.logger.Warn("Login rejected", log.FieldOperation, log.OpLogin,
			log.FieldUsername, username, log.FieldError, err)
		return
	}

	fmt.Fprintln(s.out, "Login successful!")
	sessionLogger := s.logger.With(log.FieldSessionID, uuid.NewString(), log.FieldUsername, username)
	sessionLogger.Info("Session started", log.FieldOperation, log.OpLogin)

	if err := s.session(ctx, a, sessionLogger); err != nil && !errors.Is(err, io.EOF) {
		sessionLogger.Error("Session aborted", log.FieldError, err)
	}
	sessionLogger.Info("Session ended", log.FieldOperation, log.OpLogout)
}

// session runs the per-account command loop. The current account is a
// replaceable reference: load swaps it for the freshly restored one.
func (s *Shell) session(ctx context.Context, current *account.Account, logger *log.Logger) error {
	for {
		action, err := s.prompt("Choose an action: add, list, summary, save, load, logout: ")
		if err != nil {
			return err
		}

		switch action {
		case "add":
			s.handleAdd(current, logger)
		case "list":
			s.handleList(current)
		case "summary":
			s.handleSummary(current)
		case "save":
			s.handleSave(ctx, current, logger)
		case "load":
			if loaded := s.handleLoad(ctx, current.Username, logger); loaded != nil {
				current = loaded
			}
		case "logout":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid action.")
		}
	}
}

func (s *Shell) handleAdd(current *account.Account, logger *log.Logger) {
	date, err := s.prompt("Enter date (YYYY-MM-DD): ")
	if err != nil {
		return
	}
	if s.tax != nil && len(s.tax.Categories()) > 0 {
		fmt.Fprintf(s.out, "Known categories: %s\n", strings.Join(s.tax.Categories(), ", "))
	}
	category, err := s.prompt("Enter category: ")
	if err != nil {
		return
	}
	amountText, err := s.prompt("Enter amount: ")
	if err != nil {
		return
	}

	amount, err := core.ParseAmount(amountText)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid amount.")
		return
	}

	e := core.Expense{Date: date, Category: category, Amount: amount}
	if err := current.Ledger.Add(e); err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidDate):
			fmt.Fprintln(s.out, "Invalid date.")
		case errors.Is(err, core.ErrEmptyCategory):
			fmt.Fprintln(s.out, "Category cannot be empty.")
		default:
			fmt.Fprintf(s.out, "Error adding expense: %v\n", err)
		}
		return
	}

	fmt.Fprintln(s.out, "Expense added successfully.")
	logger.Debug("Expense added", log.FieldOperation, log.OpAdd,
		log.FieldDate, date, log.FieldCategory, category, log.FieldAmount, amount)
}

func (s *Shell) handleList(current *account.Account) {
	sortText, err := s.prompt("Sort by (date, category, amount) or leave blank: ")
	if err != nil {
		return
	}
	filter, err := s.prompt("Filter by category or leave blank: ")
	if err != nil {
		return
	}

	results := current.Ledger.Query(core.ParseSortKey(sortText), filter)
	if len(results) == 0 {
		fmt.Fprintln(s.out, "No matching expenses.")
		return
	}
	for _, e := range results {
		fmt.Fprintf(s.out, "%-12s %-20s %10s\n", e.Date, e.Category, core.FormatAmount(e.Amount))
	}
}

func (s *Shell) handleSummary(current *account.Account) {
	category, err := s.prompt("Enter category to summarize: ")
	if err != nil {
		return
	}
	total := current.Ledger.CategoryTotal(category)
	fmt.Fprintf(s.out, "Total for %s: %s\n", category, core.FormatAmount(total))
}

func (s *Shell) handleSave(ctx context.Context, current *account.Account, logger *log.Logger) {
	if err := s.store.Save(ctx, current); err != nil {
		fmt.Fprintf(s.out, "Error saving user data: %v\n", err)
		logger.Error("Snapshot save failed", log.FieldOperation, log.OpSave, log.FieldError, err)
		return
	}
	fmt.Fprintln(s.out, "User data saved successfully.")
	logger.Info("Snapshot saved", log.FieldOperation, log.OpSave,
		log.FieldCount, current.Ledger.Len())
}

// handleLoad restores the snapshot for username and installs it in the
// directory, returning the fresh account. On any failure the directory is
// left untouched and nil is returned.
func (s *Shell) handleLoad(ctx context.Context, username string, logger *log.Logger) *account.Account {
	loaded, err := s.store.Load(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, snapshot.ErrNotFound):
			fmt.Fprintf(s.out, "No saved data for %s.\n", username)
		case errors.Is(err, snapshot.ErrCorrupt):
			fmt.Fprintf(s.out, "Saved data for %s is unreadable.\n", username)
		default:
			fmt.Fprintf(s.out, "Error loading user data: %v\n", err)
		}
		logger.Warn("Snapshot load failed", log.FieldOperation, log.OpLoad, log.FieldError, err)
		return nil
	}

	s.dir.Install(loaded)
	fmt.Fprintln(s.out, "User data loaded successfully.")
	logger.Info("Snapshot loaded", log.FieldOperation, log.OpLoad,
		log.FieldCount, loaded.Ledger.Len())
	return loaded
}

func (s *Shell) prompt(text string) (string, error) {
	fmt.Fprint(s.out, text)
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal, falling back
// to a plain line read for pipes and tests.
func (s *Shell) promptPassword(text string) (string, error) {
	fmt.Fprint(s.out, text)
	if f, ok := s.rawIn.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(s.out)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return s.readLine()
}

func (s *Shell) readLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

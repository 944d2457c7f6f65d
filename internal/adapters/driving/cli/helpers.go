package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

var errNotConfigured = errors.New("service not configured")

// currentUser returns the logged-in user or ErrAuthRequired.
func currentUser() (domain.User, error) {
	if sessionService == nil {
		return domain.User{}, fmt.Errorf("session: %w", errNotConfigured)
	}
	state := sessionService.Current()
	if !state.IsAuthenticated() {
		return domain.User{}, fmt.Errorf("run 'servilink login' first: %w", domain.ErrAuthRequired)
	}
	return *state.User(), nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", arg, domain.ErrInvalidInput)
	}
	return id, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// prompt asks for a value on the command's input stream.
func prompt(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	cmd.Print(label)
	return readLine(reader)
}

// readPassword reads without echo when stdin is a terminal.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
		password, err := term.ReadPassword(int(in.Fd()))
		cmd.Println()
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func newReader(r io.Reader) *bufio.Reader {
	return bufio.NewReader(r)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func formatPrice(p float64) string {
	return "$" + strconv.FormatFloat(p, 'f', 2, 64)
}

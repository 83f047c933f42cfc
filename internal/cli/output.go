package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/futureintern/platform/internal/gateway"
)

var errNotLoggedIn = errors.New("not logged in: run `futureintern login` first")

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printTableHeader(w io.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printError turns gateway errors into one readable line.
func printError(w io.Writer, err error) {
	var netErr *gateway.NetworkError
	switch {
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			fmt.Fprintln(w, "Error: the server took too long to answer")
		} else {
			fmt.Fprintf(w, "Error: could not reach the server at %s\n", netErr.URL)
		}
	case gateway.IsUnauthorized(err):
		fmt.Fprintf(w, "Error: %v (your session may have expired, run `futureintern login`)\n", err)
	default:
		if httpErr, ok := gateway.AsHTTPError(err); ok && httpErr.RateLimited() {
			fmt.Fprintln(w, "Error: too many requests, try again in a minute")
			return
		}
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func formatGPA(gpa *float64) string {
	if gpa == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *gpa)
}

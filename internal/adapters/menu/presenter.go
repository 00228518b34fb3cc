// Package menu renders the build matrix and reads the operator's choice.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/zerr"
	"go.trai.ch/zmkbuild/internal/core/domain"
	"go.trai.ch/zmkbuild/internal/core/ports"
	"go.trai.ch/zmkbuild/internal/ui/output"
	"go.trai.ch/zmkbuild/internal/ui/style"
)

var _ ports.Presenter = (*Presenter)(nil)

const (
	quitToken = "q"
	missing   = "N/A"
)

type outcome int

const (
	outcomeInvalid outcome = iota
	outcomeOutOfRange
	outcomeQuit
	outcomeSelected
)

// Presenter implements ports.Presenter on a line-oriented console.
type Presenter struct {
	reader *bufio.Reader
	out    io.Writer
	term   *termenv.Output
	echo   bool
}

// NewPresenter creates a Presenter reading from in and writing to out.
// With echo set, every line read is written back so piped sessions stay readable.
func NewPresenter(in io.Reader, out io.Writer, echo bool) *Presenter {
	return &Presenter{
		reader: bufio.NewReader(in),
		out:    out,
		term:   output.New(out),
		echo:   echo,
	}
}

// Show prints the numbered menu of targets.
func (p *Presenter) Show(targets domain.TargetList) {
	_, _ = fmt.Fprintf(p.out, "\n%s\n\n", output.Bold(p.term, "=== Available Build Configurations ==="))

	for i, target := range targets {
		entry := fmt.Sprintf("%d. %s (%s)", i+1, orMissing(target.Shield), orMissing(target.Board))
		_, _ = fmt.Fprintln(p.out, entry)
		if target.Snippet != "" {
			_, _ = fmt.Fprintf(p.out, "   %s Snippet: %s\n", output.Paint(p.term, style.Branch, style.Slate), target.Snippet)
		}
		if target.CMakeArgs != "" {
			_, _ = fmt.Fprintf(p.out, "   %s CMake args: %s\n", output.Paint(p.term, style.Branch, style.Slate), target.CMakeArgs)
		}
		_, _ = fmt.Fprintln(p.out)
	}
}

// Select prompts until the operator picks an entry in [1, n] or quits.
// End of input counts as quitting.
func (p *Presenter) Select(ctx context.Context, n int) (int, error) {
	for {
		_, _ = fmt.Fprintf(p.out, "Select build configuration (1-%d) or '%s' to quit: ", n, quitToken)

		line, err := p.readLine(ctx)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			_, _ = fmt.Fprintln(p.out)
			return 0, domain.ErrSelectionAborted
		case ctx.Err() != nil:
			_, _ = fmt.Fprintln(p.out)
			return 0, errors.Join(domain.ErrInterrupted, zerr.Wrap(err, "prompt cancelled"))
		default:
			return 0, zerr.Wrap(err, "failed to read selection")
		}

		if p.echo {
			_, _ = fmt.Fprintln(p.out, line)
		}

		idx, result := parseChoice(line, n)
		switch result {
		case outcomeQuit:
			return 0, domain.ErrSelectionAborted
		case outcomeSelected:
			return idx, nil
		case outcomeOutOfRange:
			_, _ = fmt.Fprintf(p.out, "Please enter a number between 1 and %d\n", n)
		case outcomeInvalid:
			_, _ = fmt.Fprintln(p.out, "Invalid input. Please enter a number.")
		}
	}
}

// Pick resolves a 1-based index or an exact shield name to a zero-based index.
func (p *Presenter) Pick(targets domain.TargetList, choice string) (int, error) {
	idx, result := parseChoice(choice, len(targets))
	if result == outcomeSelected {
		return idx, nil
	}

	name := strings.TrimSpace(choice)
	for i, target := range targets {
		if target.Shield != "" && target.Shield == name {
			return i, nil
		}
	}

	return 0, errors.Join(domain.ErrInvalidSelection,
		zerr.With(zerr.New("no build configuration matches "+strconv.Quote(name)), "choices", len(targets)))
}

// parseChoice classifies one line of input.
func parseChoice(line string, n int) (int, outcome) {
	choice := strings.TrimSpace(line)
	if strings.EqualFold(choice, quitToken) {
		return 0, outcomeQuit
	}

	num, err := strconv.Atoi(choice)
	if err != nil {
		return 0, outcomeInvalid
	}
	if num < 1 || num > n {
		return 0, outcomeOutOfRange
	}
	return num - 1, outcomeSelected
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one line, giving up when ctx is cancelled. A final line
// without a trailing newline is returned before io.EOF is reported.
func (p *Presenter) readLine(ctx context.Context) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		line := strings.TrimRight(res.line, "\r\n")
		if res.err != nil && (line == "" || !errors.Is(res.err, io.EOF)) {
			return "", res.err
		}
		return line, nil
	}
}

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}

// Command calc evaluates arithmetic expressions.
//
//	calc "1 + (2 - 3) * 2"
//	echo "3/2" | calc
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"expression-calculator/internal/expression"
)

// errFailed reports that at least one expression failed. The failure itself
// has already been printed.
var errFailed = errors.New("evaluation failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose   bool
		keepGoing bool
	)

	cmd := &cobra.Command{
		Use:   "calc [expression]",
		Short: "Evaluate arithmetic expressions",
		Long: `Calc evaluates an arithmetic expression with + - * /, unary signs,
parentheses and decimal numbers. Results are rounded to two decimal places.

With no argument, calc reads expressions from standard input, one per line.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("build logger: %w", err)
				}
				logger = l
			}
			defer logger.Sync()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				if !report(out, logger, args[0]) {
					return errFailed
				}
				return nil
			}
			return evaluateLines(cmd.InOrStdin(), out, logger, keepGoing)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log evaluation details to stderr")
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "continue reading input after a failed expression")

	return cmd
}

// evaluateLines evaluates every non-blank line of in.
func evaluateLines(in io.Reader, out io.Writer, logger *zap.Logger, keepGoing bool) error {
	failed := false
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !report(out, logger, line) {
			failed = true
			if !keepGoing {
				return errFailed
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if failed {
		return errFailed
	}
	return nil
}

// report evaluates src and prints the result or the failure.
func report(out io.Writer, logger *zap.Logger, src string) bool {
	v, err := expression.Evaluate(src)
	if err != nil {
		logger.Debug("evaluation failed",
			zap.String("expression", src),
			zap.Stringer("kind", expression.KindOf(err)),
			zap.Error(err),
		)
		fmt.Fprintf(out, "Equation: %s --> Error: %v\n", src, err)
		return false
	}
	logger.Debug("evaluated", zap.String("expression", src), zap.Float64("result", v))
	fmt.Fprintln(out, expression.Format(v))
	return true
}

// Command matchcore reads one command per line (from a file named as its
// first argument, or stdin) and drives them through the matching engine,
// writing every resulting event line to stdout.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	match "github.com/coredepth/matchcore"
	"github.com/coredepth/matchcore/parser"
	"github.com/coredepth/matchcore/protocol"
	"github.com/coredepth/matchcore/report"
)

func main() {
	capacity := flag.Int("side-book-capacity", match.DefaultSideBookCapacity, "per-side order capacity")
	flag.Parse()

	in, err := openInput(flag.Arg(0))
	if err != nil {
		slog.Error("failed to open input", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer in.Close()

	if err := run(in, os.Stdout, *capacity); err != nil {
		slog.Error("fatal engine error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func run(in io.Reader, out io.Writer, capacity int) error {
	engine := match.New(match.WithSideBookCapacity(capacity))
	writer := report.New(out)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		cmd, err := parser.Parse(line)
		if err != nil {
			slog.Warn("skipping malformed line", slog.String("line", line), slog.String("error", err.Error()))
			continue
		}
		events, err := engine.Process(cmd)
		if err != nil {
			if errors.Is(err, match.ErrCapacityExceeded) {
				writer.Flush()
				return fmt.Errorf("matchcore: %w", err)
			}
			return err
		}
		if err := writer.WriteAll(events); err != nil {
			return err
		}
		for _, ev := range events {
			protocol.ReleaseEvent(ev)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return writer.Flush()
}

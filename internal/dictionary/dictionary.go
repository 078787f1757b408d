// Package dictionary reads and writes rate dictionary files: plain text,
// one `<label> <value>` pair per line, where the value is either an integer
// FIT literal or a `<int><unit>` time string.
package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/markovavail/internal/config"
	"github.com/vk/markovavail/internal/ctxlog"
)

// Dictionary maps edge labels to unparsed rate values.
type Dictionary map[string]string

// Lookup returns the raw value for label.
func (d Dictionary) Lookup(label string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d[label]
	return v, ok
}

// Load reads the dictionary file at path.
func Load(ctx context.Context, path string) (Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &config.ParseError{Path: path, Reason: "cannot open dictionary", Err: err}
	}
	defer f.Close()
	return Parse(ctx, path, f)
}

// Parse reads dictionary entries from r. Lines starting with '#' or '/' are
// comments, lines with fewer than two fields are ignored, and a repeated
// label overwrites the earlier value.
func Parse(ctx context.Context, name string, r io.Reader) (Dictionary, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reading rate dictionary.", "path", name)

	dict := make(Dictionary)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.HasPrefix(text, "#") || strings.HasPrefix(text, "/") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			continue
		}
		if prev, ok := dict[fields[0]]; ok {
			logger.Warn("Duplicate dictionary entry, the later value wins.", "label", fields[0], "previous", prev, "value", fields[1], "line", line)
		}
		dict[fields[0]] = fields[1]
		logger.Debug("Dictionary entry.", "label", fields[0], "value", fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, &config.ParseError{Path: name, Line: line + 1, Reason: "cannot read dictionary", Err: err}
	}

	logger.Debug("Rate dictionary loaded.", "entries", len(dict))
	return dict, nil
}

// Entry is one generated dictionary line.
type Entry struct {
	Label       string
	FITs        int64
	Description string
}

// Write renders entries in dictionary format, preceded by the given header
// comment lines. Entries are written in the order given.
func Write(w io.Writer, header []string, entries []Entry) error {
	bw := bufio.NewWriter(w)

	width := 8
	for _, e := range entries {
		width = max(width, len(e.Label))
	}
	const valueWidth = 16

	for _, h := range header {
		fmt.Fprintf(bw, "# %s\n", h)
	}
	fmt.Fprintf(bw, "# %-*s\t%*s\n", width, "parameter", valueWidth, "FITs")
	fmt.Fprintf(bw, "# %-*s\t%*s\n", width, "---------", valueWidth, "-----")
	for _, e := range entries {
		if e.Description != "" {
			fmt.Fprintf(bw, "%-*s\t%*d\t# %s\n", width, e.Label, valueWidth, e.FITs, e.Description)
		} else {
			fmt.Fprintf(bw, "%-*s\t%*d\n", width, e.Label, valueWidth, e.FITs)
		}
	}
	return bw.Flush()
}

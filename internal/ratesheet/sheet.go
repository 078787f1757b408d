package ratesheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/markovavail/internal/ctxlog"
	"github.com/vk/markovavail/internal/dictionary"
)

// Load reads and evaluates the rate sheet at path.
func Load(ctx context.Context, path string, overrides map[string]string) (*Sheet, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &SheetError{Path: path, Err: err}
	}
	return Parse(ctx, path, src, overrides)
}

// Parse evaluates a rate sheet held in memory. name is used in
// diagnostics and in the generated header.
func Parse(ctx context.Context, name string, src []byte, overrides map[string]string) (*Sheet, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Rate sheet evaluation started.", "path", name, "overrides", len(overrides))

	file, diags := hclparse.NewParser().ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, &SheetError{Path: name, Err: diags}
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, &SheetError{Path: name, Err: diags}
	}

	evalCtx := newEvalContext()
	params, err := evalParams(ctx, evalCtx, root.Params, overrides)
	if err != nil {
		return nil, &SheetError{Path: name, Err: err}
	}

	sheet := &Sheet{Source: name, Params: params}
	var errs []error
	seen := make(map[string]bool, len(root.Rates))
	for _, b := range root.Rates {
		if seen[b.Name] {
			errs = append(errs, fmt.Errorf("rate %q is defined twice", b.Name))
			continue
		}
		seen[b.Name] = true

		r, err := evalRate(ctx, evalCtx, b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sheet.Rates = append(sheet.Rates, r)
	}
	if len(errs) > 0 {
		return nil, &SheetError{Path: name, Err: errors.Join(errs...)}
	}

	slices.SortFunc(sheet.Rates, func(a, b Rate) int { return strings.Compare(a.Name, b.Name) })
	logger.Debug("Rate sheet evaluated.", "params", len(params), "rates", len(sheet.Rates))
	return sheet, nil
}

// Entries returns the sheet as dictionary entries, with FITs rounded to
// the nearest integer.
func (s *Sheet) Entries() []dictionary.Entry {
	out := make([]dictionary.Entry, 0, len(s.Rates))
	for _, r := range s.Rates {
		out = append(out, dictionary.Entry{
			Label:       r.Name,
			FITs:        int64(math.Round(r.FITs)),
			Description: r.Description,
		})
	}
	return out
}

// Write renders the sheet as a dictionary file. The header records the
// source, the generation time and any overrides.
func (s *Sheet) Write(w io.Writer, generated time.Time, overrides map[string]string) error {
	header := []string{
		fmt.Sprintf("rates generated from %s", s.Source),
		fmt.Sprintf("generated %s", generated.Format(time.RFC3339)),
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		header = append(header, fmt.Sprintf("override %s = %s", name, overrides[name]))
	}
	return dictionary.Write(w, header, s.Entries())
}

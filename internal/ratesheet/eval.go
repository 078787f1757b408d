package ratesheet

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/markovavail/internal/ctxlog"
	"github.com/vk/markovavail/internal/rates"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

// timeUnits are the built-in constants, each the length of one unit in hours.
var timeUnits = map[string]string{
	"second": "1s",
	"minute": "1m",
	"hour":   "1h",
	"day":    "1d",
	"week":   "1w",
	"year":   "1y",
}

// fitsFunc converts a mean time to transition, in hours, into FITs.
var fitsFunc = function.New(&function.Spec{
	Params: []function.Parameter{{Name: "hours", Type: cty.Number}},
	Type:   function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var hours float64
		if err := gocty.FromCtyValue(args[0], &hours); err != nil {
			return cty.NilVal, err
		}
		if hours <= 0 {
			return cty.NilVal, fmt.Errorf("time must be positive, got %g hours", hours)
		}
		return cty.NumberFloatVal(rates.FITs(hours)), nil
	},
})

func newEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(timeUnits))
	for name, spelling := range timeUnits {
		hours, err := rates.ParseTime(spelling)
		if err != nil {
			panic(err)
		}
		vars[name] = cty.NumberFloatVal(hours)
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: map[string]function.Function{"fits": fitsFunc},
	}
}

// isExprDefined reports whether an optional attribute was present in the
// source. gohcl fills omitted optional expressions with a zero-width
// placeholder, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if rate attribute was defined.", "attribute", attrName, "hcl_range", r.String(), "is_defined", defined)
	return defined
}

// evalNumber evaluates expr into a finite float64.
func evalNumber(expr hcl.Expression, evalCtx *hcl.EvalContext, what string) (float64, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, diags
	}
	var f float64
	if err := gocty.FromCtyValue(val, &f); err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s is not a finite number", what)
	}
	return f, nil
}

// evalParams evaluates every params attribute in source order, so each may
// refer to the ones above it. An override replaces the expression of the
// parameter it names.
func evalParams(ctx context.Context, evalCtx *hcl.EvalContext, blocks []*paramsBlock, overrides map[string]string) (map[string]float64, error) {
	logger := ctxlog.FromContext(ctx)

	var attrs []*hcl.Attribute
	seen := make(map[string]hcl.Range)
	for _, b := range blocks {
		battrs, diags := b.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diags
		}
		for name, attr := range battrs {
			if prev, ok := seen[name]; ok {
				return nil, fmt.Errorf("parameter %q is defined twice (first at %s)", name, prev)
			}
			if _, ok := timeUnits[name]; ok {
				return nil, fmt.Errorf("parameter %q at %s shadows a built-in constant", name, attr.NameRange)
			}
			seen[name] = attr.NameRange
			attrs = append(attrs, attr)
		}
	}
	slices.SortFunc(attrs, func(a, b *hcl.Attribute) int {
		return a.Range.Start.Byte - b.Range.Start.Byte
	})

	for name := range overrides {
		if _, ok := seen[name]; !ok {
			return nil, fmt.Errorf("cannot override unknown parameter %q", name)
		}
	}

	params := make(map[string]float64, len(attrs))
	for _, attr := range attrs {
		expr := attr.Expr
		if src, ok := overrides[attr.Name]; ok {
			var diags hcl.Diagnostics
			expr, diags = hclsyntax.ParseExpression([]byte(src), "--set "+attr.Name, hcl.InitialPos)
			if diags.HasErrors() {
				return nil, diags
			}
			logger.Debug("Parameter overridden.", "param", attr.Name, "expr", src)
		}

		v, err := evalNumber(expr, evalCtx, "parameter "+attr.Name)
		if err != nil {
			return nil, err
		}
		params[attr.Name] = v
		evalCtx.Variables[attr.Name] = cty.NumberFloatVal(v)
		logger.Debug("Parameter evaluated.", "param", attr.Name, "value", v)
	}
	return params, nil
}

// evalRate evaluates one rate block. Exactly one of fits and time must be
// set; a time is a number of hours or a `<integer><unit>` string.
func evalRate(ctx context.Context, evalCtx *hcl.EvalContext, b *rateBlock) (Rate, error) {
	hasFits := isExprDefined(ctx, b.Fits, "fits")
	hasTime := isExprDefined(ctx, b.Time, "time")
	r := Rate{Name: b.Name, Description: strings.TrimSpace(b.Description)}

	switch {
	case hasFits && hasTime:
		return r, fmt.Errorf("rate %q sets both fits and time", b.Name)
	case hasFits:
		f, err := evalNumber(b.Fits, evalCtx, fmt.Sprintf("rate %q fits", b.Name))
		if err != nil {
			return r, err
		}
		if f < 0 {
			return r, fmt.Errorf("rate %q has negative fits %g", b.Name, f)
		}
		r.FITs = f
	case hasTime:
		hours, err := evalTime(b, evalCtx)
		if err != nil {
			return r, err
		}
		r.FITs = rates.FITs(hours)
	default:
		return r, fmt.Errorf("rate %q needs one of fits or time", b.Name)
	}
	return r, nil
}

func evalTime(b *rateBlock, evalCtx *hcl.EvalContext) (float64, error) {
	val, diags := b.Time.Value(evalCtx)
	if diags.HasErrors() {
		return 0, diags
	}
	if val.Type() == cty.String && val.IsKnown() && !val.IsNull() {
		hours, err := rates.ParseTime(val.AsString())
		if err != nil {
			return 0, fmt.Errorf("rate %q: %w", b.Name, err)
		}
		return hours, nil
	}

	hours, err := evalNumber(b.Time, evalCtx, fmt.Sprintf("rate %q time", b.Name))
	if err != nil {
		return 0, err
	}
	if hours <= 0 {
		return 0, fmt.Errorf("rate %q has non-positive time %g", b.Name, hours)
	}
	return hours, nil
}

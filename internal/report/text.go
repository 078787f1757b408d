package report

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/vk/markovavail/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Options controls text rendering.
type Options struct {
	Format Format
	// Styled renders section titles with terminal styling.
	Styled bool
}

var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// textWriter remembers the first write error so the reports can be laid
// out without checking every line.
type textWriter struct {
	w   io.Writer
	err error
	opt Options
	num *message.Printer
}

func (t *textWriter) println(s string) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintln(t.w, s)
}

func (t *textWriter) title(s string) {
	t.println("")
	if t.opt.Styled {
		s = titleStyle.Render(s)
	}
	t.println(s)
}

func (t *textWriter) row(d1, n1, n2, d2, d3 string) {
	t.println(t.opt.Format.Row(d1, n1, n2, d2, d3))
}

func (t *textWriter) fits(v float64) string {
	return fmt.Sprintf("%*s", t.opt.Format.DataWidth, t.num.Sprintf("%d", int64(math.Round(v))))
}

func (t *textWriter) optionalPct(v *float64) string {
	if v == nil {
		return ""
	}
	return t.opt.Format.LoPct(*v)
}

func (t *textWriter) totalPct(v float64) string {
	if v == 0 {
		return ""
	}
	return t.opt.Format.LoPct(v)
}

// WriteText writes the state, class and tributary reports.
func WriteText(w io.Writer, m *model.Model, s *Summary, opts Options) error {
	t := &textWriter{w: w, opt: opts, num: message.NewPrinter(language.English)}
	t.states(s)
	t.classes(s)
	t.tributaries(m, s)
	return t.err
}

func (t *textWriter) states(s *Summary) {
	f := t.opt.Format
	line := f.Line()
	t.title("per state:")
	t.row("occupancy", "state", "class", "perf", "capacity")
	t.row(line, line, line, line, line)
	for _, r := range s.States {
		t.row(f.HiPct(r.Occupancy), r.Name, r.Class, t.optionalPct(r.Performance), t.optionalPct(r.Capacity))
	}
	t.row(line, line, "", "", "")
	tot := s.StateTotals
	t.row(f.HiPct(tot.Occupancy), "total", "", t.totalPct(tot.Performance), t.totalPct(tot.Capacity))
}

func (t *textWriter) classes(s *Summary) {
	f := t.opt.Format
	line := f.Line()
	t.title("per availability class:")
	t.row("occupancy", "", "class", "perf", "capacity")
	t.row(line, "", line, line, line)
	for _, r := range s.Classes {
		t.row(f.HiPct(r.Occupancy), "", r.Name, t.optionalPct(r.Performance), t.optionalPct(r.Capacity))
	}
	t.row(line, "", line, "", "")
	tot := s.ClassTotals
	t.row(f.HiPct(tot.Occupancy), "", "total", t.totalPct(tot.Performance), t.totalPct(tot.Capacity))
}

func (t *textWriter) tributaries(m *model.Model, s *Summary) {
	f := t.opt.Format
	line := f.Line()
	occupancy := make(map[int]float64, len(s.States))
	for _, r := range s.States {
		occupancy[r.ID] = r.Occupancy
	}

	t.title("tributary transitions:")
	t.row("occupancy", "state", "source", "fraction", "FITs")
	t.row(line, line, line, line, line)
	for _, trib := range s.Tributaries {
		occ, name := f.HiPct(occupancy[trib.Target]), m.State(trib.Target).Name
		for _, src := range trib.Sources {
			t.row(occ, name, m.State(src.Source).Name, f.LoPct(src.Fraction), t.fits(src.FITs))
			occ, name = "", ""
		}
	}
}

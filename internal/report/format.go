package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vk/markovavail/internal/model"
)

const (
	defaultDataWidth = 10
	minNameWidth     = 8
	defaultIndent    = 4
)

// Format holds the field widths and precisions shared by every text report.
type Format struct {
	DataWidth int
	NameWidth int
	HiRes     int // decimal places of occupancy percentages
	LoRes     int // decimal places of fractions and performance
	Indent    int
}

// NewFormat sizes the name columns to fit every state name and class in m.
func NewFormat(m *model.Model, hires, lores int) Format {
	width := minNameWidth
	for _, s := range m.States() {
		width = max(width, utf8.RuneCountInString(s.Name), utf8.RuneCountInString(s.Class))
	}
	return Format{
		DataWidth: defaultDataWidth,
		NameWidth: width,
		HiRes:     hires,
		LoRes:     lores,
		Indent:    defaultIndent,
	}
}

// HiPct renders a fraction as a hi-res percentage.
func (f Format) HiPct(v float64) string {
	return fmt.Sprintf("%*.*f%%", f.DataWidth-1, f.HiRes, 100*v)
}

// LoPct renders a fraction as a lo-res percentage.
func (f Format) LoPct(v float64) string {
	return fmt.Sprintf("%*.*f%%", f.DataWidth-1, f.LoRes, 100*v)
}

// Line is the separator of one data column.
func (f Format) Line() string {
	return strings.Repeat("-", f.DataWidth-1)
}

// Row lays out one report line: a data column, two name columns and two
// more data columns.
func (f Format) Row(d1, n1, n2, d2, d3 string) string {
	row := fmt.Sprintf("%s%*s\t%-*s\t%-*s\t%*s\t%*s",
		strings.Repeat(" ", f.Indent),
		f.DataWidth, d1,
		f.NameWidth, n1,
		f.NameWidth, n2,
		f.DataWidth, d2,
		f.DataWidth, d3)
	return strings.TrimRight(row, " \t")
}

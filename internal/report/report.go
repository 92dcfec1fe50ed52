// Package report prints analysis results as a plain text report.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/beam"
)

const (
	rule   = "═══════════════════════════════════════════════════════════════"
	thin   = "───────────────────────────────────────────────────────────────"
	indent = "  "
)

// Supported lists the report languages, English first.
var Supported = []language.Tag{language.English, language.Filipino, language.Turkish}

var matcher = language.NewMatcher(Supported)

// ParseLanguage resolves a BCP 47 tag such as "en", "fil" or "tr" to a supported
// report language.
func ParseLanguage(s string) (language.Tag, error) {
	if strings.TrimSpace(s) == "" {
		return language.English, nil
	}
	t, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", s, err)
	}
	_, i, conf := matcher.Match(t)
	if conf == language.No {
		return language.Und, fmt.Errorf("unsupported language %q", s)
	}
	return Supported[i], nil
}

// Options controls the report content.
type Options struct {
	Language    language.Tag // defaults to English
	Description string
	Loads       []beam.Load // unfactored input loads, listed when given
	Rigidity    float64     // actual EI (kN-m²); deflections are reported only when set
}

// Write prints the report for a solved beam.
func Write(w io.Writer, title string, sol *analysis.Solution, opts Options) error {
	lang := opts.Language
	if lang == language.Und {
		lang = language.English
	}
	p := message.NewPrinter(lang)
	r := &writer{w: w, p: p}

	b := sol.Beam()

	r.line("")
	r.line(rule)
	r.line("     " + strings.ToUpper(title))
	r.line(rule)
	if opts.Description != "" {
		r.line(indent + opts.Description)
	}
	r.line("")

	r.section("INPUT DATA:")
	tw := r.table()
	p.Fprintf(tw, "  Beam length:\t%.2f m\n", b.Length)
	if opts.Rigidity > 0 {
		p.Fprintf(tw, "  Flexural rigidity (EI):\t%.0f kN-m²\n", opts.Rigidity)
	}
	for i, s := range b.Supports {
		label := ""
		if i == 0 {
			label = p.Sprintf("Supports")
		}
		p.Fprintf(tw, "  %s\t%s at x = %.3f m\n", colon(label), s.Restraint, s.Location)
	}
	for i, l := range opts.Loads {
		label := ""
		if i == 0 {
			label = p.Sprintf("Loads")
		}
		fmt.Fprintf(tw, "  %s\t%s\n", colon(label), l)
	}
	p.Fprintf(tw, "  Solver:\t%s\n", sol.Method())
	r.flush(tw)
	r.line("")

	r.section("SUPPORT REACTIONS:")
	tw = r.table()
	p.Fprintf(tw, "  x (m)\tFy (kN)\tM (kN-m)\n")
	reactions := sol.Reactions()
	for _, x := range reactions.Locations() {
		re := reactions[x]
		p.Fprintf(tw, "  %.3f\t%.2f\t%.2f\n", x, re.Fy, re.M)
	}
	r.flush(tw)
	r.line("")

	r.section("DESIGN VALUES:")
	tw = r.table()
	v, m := sol.MaxShear(), sol.MaxMoment()
	p.Fprintf(tw, "  Maximum shear (Vmax):\t%.2f kN at x = %.3f m\n", v.Value, v.Location)
	p.Fprintf(tw, "  Maximum moment (Mmax):\t%.2f kN-m at x = %.3f m\n", m.Value, m.Location)
	if nodal := sol.Nodal(); nodal != nil && opts.Rigidity > 0 {
		d, x := maxDeflection(nodal.Nodes, nodal.Deflections)
		p.Fprintf(tw, "  Maximum deflection:\t%.2f mm at x = %.3f m\n", d*1000, x)
	}
	r.flush(tw)
	r.line(rule)
	r.line("")

	return r.err
}

func maxDeflection(nodes, deflections []float64) (float64, float64) {
	var d, x float64
	for i, v := range deflections {
		if math.Abs(v) > math.Abs(d) {
			d, x = v, nodes[i]
		}
	}
	return d, x
}

func colon(s string) string {
	if s == "" {
		return ""
	}
	return s + ":"
}

// writer keeps the first write error so the report reads top to bottom.
type writer struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (r *writer) line(s string) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintln(r.w, s)
}

func (r *writer) section(key string) {
	r.line(r.p.Sprintf(key))
	r.line(thin)
}

func (r *writer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
}

func (r *writer) flush(tw *tabwriter.Writer) {
	if err := tw.Flush(); err != nil && r.err == nil {
		r.err = err
	}
}

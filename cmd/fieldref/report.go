package main

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"text/tabwriter"
	"unsafe"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/sys/cpu"

	"github.com/wippyai/fieldref/internal/config"
	"github.com/wippyai/fieldref/layout"
	"github.com/wippyai/fieldref/resolver"
)

var cacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})

type row struct {
	name    string
	kind    layout.Kind
	index   int
	offset  uintptr
	size    uintptr
	align   uintptr
	padding uintptr
	line    uintptr
}

type report struct {
	name     string
	source   string
	rows     []row
	warnings []string
	size     uintptr
	align    uintptr
	trailing uintptr
}

// buildReport lays out l through the resolver and cross-checks the result
// against the arithmetic calculation.
func buildReport(l config.Layout) (*report, error) {
	sig, err := l.Signature()
	if err != nil {
		return nil, err
	}

	info, source, err := resolve(sig)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", l.Name, err)
	}

	r := &report{
		name:   l.Name,
		source: source,
		size:   info.Size,
		align:  info.Align,
	}

	computed := layout.Calculate(sig)
	if computed.Size != info.Size || computed.Align != info.Align {
		r.warnings = append(r.warnings, fmt.Sprintf("calculated size/align %d/%d, measured %d/%d",
			computed.Size, computed.Align, info.Size, info.Align))
	}

	before, trailing := info.Padding(sig)
	r.trailing = trailing
	for i, d := range sig {
		name := l.Fields[i].Name
		if name == "" {
			name = "_" + strconv.Itoa(i)
		}
		off := info.Offsets[i]
		r.rows = append(r.rows, row{
			index:   i,
			name:    name,
			kind:    d.Kind,
			offset:  off,
			size:    d.Size,
			align:   d.Align,
			padding: before[i],
			line:    off / cacheLineSize,
		})
		if computed.Offsets[i] != off {
			r.warnings = append(r.warnings, fmt.Sprintf("%s: calculated offset %d, measured %d", name, computed.Offsets[i], off))
		}
		if d.Size > 0 && off%cacheLineSize+d.Size > cacheLineSize {
			r.warnings = append(r.warnings, fmt.Sprintf("%s straddles a %d-byte cache line", name, cacheLineSize))
		}
	}
	return r, nil
}

// resolve binds a synthesized struct when every field has a host type, and
// falls back to placeholder measurement for opaque byte fields.
func resolve(sig layout.Signature) (layout.Info, string, error) {
	fields := make([]reflect.StructField, len(sig))
	for i, d := range sig {
		if d.Type == nil {
			info, err := resolver.Measure(sig)
			return info, "placeholder", err
		}
		fields[i] = reflect.StructField{Name: "F" + strconv.Itoa(i), Type: d.Type}
	}

	st := reflect.StructOf(fields)
	res, err := resolver.New(st, sig)
	if err != nil {
		return layout.Info{}, "", err
	}
	return layout.Info{
		Offsets: res.Offsets(),
		Size:    st.Size(),
		Align:   uintptr(st.Align()),
	}, "resolver", nil
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	paddingStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFB86C"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

var columns = []string{"#", "field", "kind", "offset", "size", "align", "pad", "line"}

func (r *report) cells() [][]string {
	out := make([][]string, len(r.rows))
	for i, rw := range r.rows {
		out[i] = []string{
			strconv.Itoa(rw.index),
			rw.name,
			rw.kind.String(),
			strconv.FormatUint(uint64(rw.offset), 10),
			strconv.FormatUint(uint64(rw.size), 10),
			strconv.FormatUint(uint64(rw.align), 10),
			strconv.FormatUint(uint64(rw.padding), 10),
			strconv.FormatUint(uint64(rw.line), 10),
		}
	}
	return out
}

func (r *report) summary() string {
	return fmt.Sprintf("%s: size %d, align %d, trailing padding %d (%s)", r.name, r.size, r.align, r.trailing, r.source)
}

// renderStyled draws the report as a lipgloss table.
func renderStyled(w io.Writer, r *report) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(columns...).
		Rows(r.cells()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 6 && r.rows[row].padding > 0:
				return paddingStyle
			default:
				return cellStyle
			}
		})

	fmt.Fprintln(w, summaryStyle.Render(r.summary()))
	fmt.Fprintln(w, t.Render())
	for _, warn := range r.warnings {
		fmt.Fprintln(w, warnStyle.Render("warning: "+warn))
	}
}

// renderPlain writes tab-aligned columns for pipes and files.
func renderPlain(w io.Writer, r *report) {
	fmt.Fprintln(w, r.summary())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, c := range r.cells() {
		fmt.Fprintln(tw, strings.Join(c, "\t"))
	}
	tw.Flush()
	for _, warn := range r.warnings {
		fmt.Fprintln(w, "warning: "+warn)
	}
}

package tabler

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// BorderStyle selects the box-drawing characters of a [TextTable].
type BorderStyle string

const (
	BorderNone    BorderStyle = "none"
	BorderRounded BorderStyle = "rounded"
	BorderASCII   BorderStyle = "ascii"
	BorderHeavy   BorderStyle = "heavy"
	BorderDouble  BorderStyle = "double"
)

// ParseBorderStyle converts a flag value into a [BorderStyle].
func ParseBorderStyle(s string) (BorderStyle, error) {
	b := BorderStyle(s)
	if b == BorderNone {
		return b, nil
	}
	if _, ok := borderSets[b]; !ok {
		return "", fmt.Errorf("%w: border style %q", ErrInvalidValue, s)
	}
	return b, nil
}

// Alignment is the horizontal alignment of a text column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// textColumn is implemented by columns that have a plain-text rendering.
// [DataColumn] is the only one; action columns are skipped.
type textColumn interface {
	Column
	HeaderText() string
	FooterText() string
	Text(row Row, key string) (string, error)
}

// TextTable renders the data columns of a [Configurator] as a terminal
// table. Columns whose cells are all numbers are right-aligned.
type TextTable struct {
	cfg        Configurator
	border     BorderStyle
	title      string
	maxWidth   int
	showFooter bool
}

// NewTextTable returns a rounded-border text table over cfg.
func NewTextTable(cfg Configurator) TextTable {
	return TextTable{cfg: cfg, border: BorderRounded}
}

// Border returns a copy with the border style.
func (t TextTable) Border(style BorderStyle) TextTable {
	t.border = style
	return t
}

// Title returns a copy with a title centered above the columns. Titles are
// only drawn with a border.
func (t TextTable) Title(value string) TextTable {
	t.title = value
	return t
}

// MaxWidth returns a copy that truncates cells wider than width. Zero
// disables truncation.
func (t TextTable) MaxWidth(width int) TextTable {
	t.maxWidth = width
	return t
}

// ShowFooter returns a copy that does or does not draw the footer row.
func (t TextTable) ShowFooter(value bool) TextTable {
	t.showFooter = value
	return t
}

// Write renders the table to w. Nothing is written when there are no
// rows.
func (t TextTable) Write(w io.Writer) error {
	columns, err := t.cfg.Columns()
	if err != nil {
		return err
	}
	var cols []KeyedColumn
	for _, c := range visibleColumns(columns) {
		if _, ok := c.Column.(textColumn); ok {
			cols = append(cols, c)
		}
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Column.(textColumn).HeaderText()
	}

	var rows [][]string
	for i, row := range t.cfg.Iterate() {
		if IsEmpty(row) {
			continue
		}
		cells := make([]string, len(cols))
		for j, c := range cols {
			if cells[j], err = c.Column.(textColumn).Text(row, c.Key); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
		}
		rows = append(rows, cells)
	}
	if err := t.cfg.Err(); err != nil {
		return fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	var footer []string
	if t.showFooter {
		footer = make([]string, len(cols))
		hasFooter := false
		for i, c := range cols {
			footer[i] = c.Column.(textColumn).FooterText()
			hasFooter = hasFooter || footer[i] != ""
		}
		if !hasFooter {
			footer = nil
		}
	}

	widths := computeWidths(len(cols), header, rows, footer)
	if t.maxWidth > 0 {
		for i := range widths {
			widths[i] = min(widths[i], t.maxWidth)
		}
	}
	aligns := numericAligns(len(cols), rows)

	if t.border == BorderNone || t.border == "" {
		return renderPlainTable(w, header, rows, footer, widths, aligns)
	}
	return renderBorderedTable(w, t.title, header, rows, footer, widths, aligns, t.border)
}

func computeWidths(numCols int, header []string, rows [][]string, footer []string) []int {
	widths := make([]int, numCols)
	for _, line := range append(append([][]string{header}, rows...), footer) {
		for i, cell := range line {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// numericAligns right-aligns every column whose non-empty cells all parse
// as numbers.
func numericAligns(numCols int, rows [][]string) []Alignment {
	aligns := make([]Alignment, numCols)
	for i := range aligns {
		numeric, seen := true, false
		for _, row := range rows {
			if row[i] == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(row[i], 64); err != nil {
				numeric = false
				break
			}
		}
		if numeric && seen {
			aligns[i] = AlignRight
		}
	}
	return aligns
}

func renderPlainTable(w io.Writer, header []string, rows [][]string, footer []string, widths []int, aligns []Alignment) error {
	if err := writePlainRow(w, header, widths, aligns); err != nil {
		return err
	}
	if err := writePlainSep(w, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writePlainRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	if len(footer) > 0 {
		if err := writePlainSep(w, widths); err != nil {
			return err
		}
		if err := writePlainRow(w, footer, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writePlainRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = formatTableCell(cells[i], width, aligns[i])
	}
	line := strings.TrimRight(strings.Join(parts, "  "), " ")
	_, err := fmt.Fprintln(w, line)
	return err
}

func renderBorderedTable(w io.Writer, title string, header []string, rows [][]string, footer []string, widths []int, aligns []Alignment, style BorderStyle) error {
	bc, ok := borderSets[style]
	if !ok {
		return fmt.Errorf("%w: border style %q", ErrInvalidValue, style)
	}

	if title != "" {
		// Full-width top border (no column separators).
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(widths) - 2
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, alignCell(title, inner, AlignCenter), bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}

	if err := drawBorderedRow(w, header, widths, aligns, bc.vertical); err != nil {
		return err
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	for _, row := range rows {
		if err := drawBorderedRow(w, row, widths, aligns, bc.vertical); err != nil {
			return err
		}
	}
	if len(footer) > 0 {
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
			return err
		}
		if err := drawBorderedRow(w, footer, widths, aligns, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// tableInnerWidth returns the width between the outer borders: each cell
// plus one space of padding per side, and one separator between cells.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, aligns []Alignment, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(formatTableCell(cells[i], width, aligns[i]))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

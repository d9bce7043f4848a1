package report

import (
	"fmt"
	"strings"
)

// builder accumulates a Markdown document as a sequence of fixed and
// conditional blocks. It is a thin layer over strings.Builder that keeps
// the per-section append sites short.
type builder struct {
	sb strings.Builder
}

func (b *builder) line(s string) {
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

func (b *builder) linef(format string, args ...any) {
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteByte('\n')
}

func (b *builder) blank() {
	b.sb.WriteByte('\n')
}

func (b *builder) heading(level int, text string) {
	b.blank()
	b.line(strings.Repeat("#", level) + " " + text)
	b.blank()
}

func (b *builder) String() string {
	return b.sb.String()
}

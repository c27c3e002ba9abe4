package step

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timeNow is swapped out in tests for a stable FILE_NAME timestamp.
var timeNow = time.Now

// Write serializes the model to the step-file text form at path.
func (m *Model) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := m.encode(w, filepath.Base(path)); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (m *Model) encode(w io.Writer, name string) error {
	header := fmt.Sprintf(
		"ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION((''),'2;1');\nFILE_NAME(%s,%s,(''),(''),'ifcmerge','','');\nFILE_SCHEMA((%s));\nENDSEC;\nDATA;\n",
		quote(name), quote(timeNow().Format("2006-01-02T15:04:05")), quote(m.schema))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	for _, e := range m.order {
		var b strings.Builder
		fmt.Fprintf(&b, "#%d=%s", e.id, strings.ToUpper(e.class))
		writeList(&b, e.args)
		b.WriteString(";\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "ENDSEC;\nEND-ISO-10303-21;\n")
	return err
}

func writeList(b *strings.Builder, vals []Value) {
	b.WriteByte('(')
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(',')
		}
		writeValue(b, v)
	}
	b.WriteByte(')')
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Kind {
	case KindNull:
		b.WriteByte('$')
	case KindDerived:
		b.WriteByte('*')
	case KindNumber:
		b.WriteString(v.Text)
	case KindString:
		b.WriteString(quote(v.Text))
	case KindEnum:
		b.WriteByte('.')
		b.WriteString(v.Text)
		b.WriteByte('.')
	case KindRef:
		fmt.Fprintf(b, "#%d", v.Ref)
	case KindList:
		writeList(b, v.List)
	case KindTyped:
		b.WriteString(strings.ToUpper(v.Text))
		writeList(b, v.List)
	}
}

// quote renders a STEP string literal, doubling embedded quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

package render

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/rcliao/usodict/internal/model"
)

// JSONWriter prints entries as a JSON array with one object per line. Empty
// fields are omitted.
type JSONWriter struct {
	w     *bufio.Writer
	buf   bytes.Buffer
	enc   *json.Encoder
	count int
}

// NewJSONWriter returns a JSONWriter on w. Close must be called to terminate the array.
func NewJSONWriter(w io.Writer) *JSONWriter {
	j := &JSONWriter{w: bufio.NewWriter(w)}
	j.enc = json.NewEncoder(&j.buf)
	j.enc.SetEscapeHTML(false)
	return j
}

// Emit writes one entry object and flushes it.
func (j *JSONWriter) Emit(_ context.Context, e *model.Entry) error {
	j.buf.Reset()
	if err := j.enc.Encode(e); err != nil {
		return err
	}

	if j.count == 0 {
		j.w.WriteString("[\n")
	} else {
		j.w.WriteString(",\n")
	}
	j.w.Write(bytes.TrimRight(j.buf.Bytes(), "\n"))
	j.count++
	return j.w.Flush()
}

// Close writes the closing bracket.
func (j *JSONWriter) Close() error {
	if j.count == 0 {
		j.w.WriteString("[\n]\n")
	} else {
		j.w.WriteString("\n]\n")
	}
	return j.w.Flush()
}

package reader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alovak/cardflow-swipe/reader/models"
)

// Sink displays swipe results.
type Sink interface {
	Show(res models.Result) error
}

// TextSink prints the three display lines per swipe.
type TextSink struct {
	w io.Writer
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (t *TextSink) Show(res models.Result) error {
	_, err := fmt.Fprintf(t.w, "Card:  %s\nExp:   %s\nExtra: %s\n\n",
		res.Display.CardID, res.Display.Expiration, res.Display.Extra)
	return err
}

// JSONSink writes one JSON document per line.
type JSONSink struct {
	enc *json.Encoder
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

func (j *JSONSink) Show(res models.Result) error {
	return j.enc.Encode(res)
}

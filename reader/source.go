package reader

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Source delivers raw reader messages. Next returns io.EOF when no more
// messages will arrive.
type Source interface {
	Next(ctx context.Context) (string, error)
}

// LineSource reads one hex message per line. Blank lines and lines
// starting with '#' are skipped.
type LineSource struct {
	sc *bufio.Scanner
}

func NewLineSource(r io.Reader) *LineSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	return &LineSource{sc: sc}
}

func (l *LineSource) Next(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !l.sc.Scan() {
			if err := l.sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line := strings.TrimSpace(l.sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
}

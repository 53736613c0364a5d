package formatid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// stallReader ends the stream once the underlying reader returns no data and no
// error on two consecutive reads.
type stallReader struct {
	r     io.Reader
	empty int
}

func (s *stallReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if n > 0 || err != nil || len(p) == 0 {
		s.empty = 0
		return n, err
	}
	s.empty++
	if s.empty >= 2 {
		return 0, io.EOF
	}
	return 0, nil
}

// FindMatchingLine scans rs forward from its current position for a line equal to
// one of the keys of headers. Trailing "\n" and "\r\n" are ignored when comparing.
// On a match rs is rewound to the first byte of the matching line. Reaching the
// end of the stream without a match is not an error: ok is false.
func FindMatchingLine[V any](rs io.ReadSeeker, headers map[string]V) (V, bool, error) {
	var zero V

	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return zero, false, fmt.Errorf("error getting stream position: %w", err)
	}

	br := bufio.NewReader(&stallReader{r: rs})
	offset := start
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return zero, false, fmt.Errorf("error scanning for header line: %w", readErr)
		}
		if line == "" {
			return zero, false, nil
		}

		text := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if v, ok := headers[text]; ok {
			if _, err := rs.Seek(offset, io.SeekStart); err != nil {
				return zero, false, fmt.Errorf("error rewinding to header line: %w", err)
			}
			return v, true, nil
		}

		offset += int64(len(line))
		if readErr != nil {
			return zero, false, nil
		}
	}
}

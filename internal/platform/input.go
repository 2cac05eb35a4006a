package platform

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ReadLine reads one line from r and returns it trimmed. A final line
// without a newline is returned normally; io.EOF is only returned when
// nothing was read.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

package console

import (
	"errors"
	"io"
	"strings"
)

// readLine reads one line without its trailing newline. A final line
// without a newline is returned as is; io.EOF is only reported once
// nothing is left.
func (c *Console) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// getPassword prompts for a password. On a terminal the input is not
// echoed. The caller should wipe the result once done.
func (c *Console) getPassword() ([]byte, error) {
	c.printf("Enter password: ")

	if c.ttyFd >= 0 {
		pw, err := readPassword(c.ttyFd)
		c.println()
		return pw, err
	}

	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// parsePairs turns key=value arguments into a map. Later pairs win.
func parsePairs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return nil, errBadPair(a)
		}
		out[k] = v
	}
	return out, nil
}

type errBadPair string

func (e errBadPair) Error() string {
	return "expected key=value, got " + string(e)
}

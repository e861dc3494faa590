package timing

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// linePattern matches "<function> takes : <float>ms" anywhere in a line.
// The fractional part of the duration is mandatory.
var linePattern = regexp.MustCompile(`([\w\s]+) takes : (\d+\.\d+)ms`)

// maxLineSize bounds a single log line. Longer lines are skipped, not parsed.
const maxLineSize = 1024 * 1024

// ParseFile reads the log at path and aggregates its timing lines.
func ParseFile(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open log %s", path)
	}
	defer file.Close()

	t, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read log %s", path)
	}
	return t, nil
}

// Parse aggregates every timing line read from r.
// Lines that are not timing lines are ignored.
func Parse(r io.Reader) (Table, error) {
	t := make(Table)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	splitter := &lineSplitter{max: maxLineSize}
	scanner.Split(splitter.split)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		t.add(scanner.Text(), lineNum)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	t.finalize()
	return t, nil
}

// ParseLines aggregates the timing lines in lines. An element holding a
// carriage return counts as several lines, the same as in a log file.
func ParseLines(lines []string) Table {
	// a strings.Reader never fails
	t, _ := Parse(strings.NewReader(strings.Join(lines, "\n")))
	return t
}

// lineSplitter is a bufio.SplitFunc source that ends lines at "\n", "\r\n"
// or a lone "\r", so progress bars redrawn with "\r" become separate lines.
// A line longer than max is dropped and comes out as an empty line.
type lineSplitter struct {
	max      int
	skipping bool
}

func (s *lineSplitter) split(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		// a trailing "\r" may be the first half of "\r\n"
		if data[i] == '\r' && i == len(data)-1 && !atEOF && len(data) < s.max {
			return 0, nil, nil
		}
		advance := i + 1
		if data[i] == '\r' && advance < len(data) && data[advance] == '\n' {
			advance++
		}
		if s.skipping {
			s.skipping = false
			return advance, data[:0], nil
		}
		return advance, data[:i], nil
	}
	if atEOF {
		if s.skipping {
			s.skipping = false
			return len(data), data[:0], nil
		}
		return len(data), data, nil
	}
	if len(data) >= s.max {
		s.skipping = true
		return len(data), nil, nil
	}
	return 0, nil, nil
}

// ParseLine extracts the function name and duration from a single timing line.
func ParseLine(line string) (name string, ms float64, ok bool) {
	match := linePattern.FindStringSubmatch(line)
	if match == nil {
		return "", 0, false
	}
	ms, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return "", 0, false
	}
	// only surrounding whitespace is trimmed, "a  b" and "a b" stay distinct
	return strings.TrimSpace(match[1]), ms, true
}

func (t Table) add(line string, lineNum int) {
	name, ms, ok := ParseLine(line)
	if !ok {
		return
	}
	if r, exists := t[name]; exists {
		r.observe(ms)
		return
	}
	t[name] = newRecord(ms, lineNum)
}

func (t Table) finalize() {
	for _, r := range t {
		r.finalize()
	}
}

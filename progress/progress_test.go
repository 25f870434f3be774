package progress

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/frankban/quicktest"
)

func TestLog_AppendsTimestampedLines(t *testing.T) {
	c := quicktest.New(t)
	path := filepath.Join(t.TempDir(), "log_file.txt")
	l := NewLogger(path)
	l.now = func() time.Time { return time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local) }

	c.Assert(l.Log("ETL Job Started"), quicktest.IsNil)
	c.Assert(l.Log("ETL Job Ended"), quicktest.IsNil)

	data, err := os.ReadFile(path)
	c.Assert(err, quicktest.IsNil)
	c.Assert(string(data), quicktest.Equals,
		"2024-03-01 09:05:07 - ETL Job Started\n2024-03-01 09:05:07 - ETL Job Ended\n")
}

func TestLog_KeepsExistingContent(t *testing.T) {
	c := quicktest.New(t)
	path := filepath.Join(t.TempDir(), "log_file.txt")
	c.Assert(os.WriteFile(path, []byte("earlier run\n"), 0644), quicktest.IsNil)

	l := NewLogger(path)
	c.Assert(l.Log("Extract phase Started"), quicktest.IsNil)

	data, err := os.ReadFile(path)
	c.Assert(err, quicktest.IsNil)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	c.Assert(lines, quicktest.HasLen, 2)
	c.Assert(lines[0], quicktest.Equals, "earlier run")
	c.Assert(regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - Extract phase Started$`).MatchString(lines[1]), quicktest.IsTrue)
}

func TestLog_UnwritablePath(t *testing.T) {
	c := quicktest.New(t)
	l := NewLogger(filepath.Join(t.TempDir(), "missing", "log_file.txt"))

	err := l.Log("ETL Job Started")
	c.Assert(err, quicktest.ErrorMatches, "failed to open log file: .*")
}

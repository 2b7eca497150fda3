package testutils

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/inkwellrender/inkwell/logger"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// CapturedLogs holds the output of the warning logger during a test.
type CapturedLogs struct {
	buf        *bytes.Buffer
	prevWriter io.Writer
	prevFlags  int
	prevPrefix string
}

// CaptureLogs redirects the warning logger to an in-memory buffer.
func CaptureLogs() *CapturedLogs {
	c := CapturedLogs{buf: new(bytes.Buffer)}
	c.prevWriter = logger.WarningLogger.Writer()
	c.prevFlags = logger.WarningLogger.Flags()
	c.prevPrefix = logger.WarningLogger.Prefix()
	logger.WarningLogger.SetOutput(c.buf)
	logger.WarningLogger.SetFlags(0)
	logger.WarningLogger.SetPrefix("")
	return &c
}

func (c *CapturedLogs) Logs() []string {
	out := strings.Split(strings.TrimSuffix(c.buf.String(), "\n"), "\n")
	if len(out) == 1 && out[0] == "" {
		return nil
	}
	return out
}

func (c *CapturedLogs) Restore() {
	logger.WarningLogger.SetOutput(c.prevWriter)
	logger.WarningLogger.SetFlags(c.prevFlags)
	logger.WarningLogger.SetPrefix(c.prevPrefix)
}

func (c *CapturedLogs) CheckEqual(exp []string, t *testing.T) {
	t.Helper()
	c.Restore()
	AssertEqual(t, c.Logs(), exp)
}

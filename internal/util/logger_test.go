package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerPrintf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Printf("Renamed %s -> %s\n", "nse_100_data1.csv", "RELIANCE.csv")

	if got := buf.String(); got != "Renamed nse_100_data1.csv -> RELIANCE.csv\n" {
		t.Errorf("Printf output = %q", got)
	}
}

func TestLoggerVerboseSuppressed(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.VerbosePrintf("detail %d\n", 1)
	logger.VerbosePrintln("more detail")

	if buf.Len() != 0 {
		t.Errorf("non-verbose logger wrote %q", buf.String())
	}
}

func TestVerboseLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewVerboseLogger(&buf)

	logger.VerbosePrintf("detail %d\n", 1)
	logger.VerbosePrintln("more detail")

	out := buf.String()
	if !strings.Contains(out, "detail 1") || !strings.Contains(out, "more detail") {
		t.Errorf("verbose logger output = %q", out)
	}
}

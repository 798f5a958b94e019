package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestForServiceMemoizes(t *testing.T) {
	a := ForService("svc-memo")
	b := ForService("svc-memo")
	if a != b {
		t.Error("ForService returned different loggers for the same name")
	}
}

func TestLoggerPrefixAndLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil) // nil is ignored; keeps the buffer for other tests in this run

	l := ForService("svc-prefix")
	l.Infof("hello %d", 42)

	out := buf.String()
	if !strings.Contains(out, "INFO [svc-prefix>] hello 42") {
		t.Errorf("unexpected output %q", out)
	}

	buf.Reset()
	l.Warnf("careful")
	if !strings.Contains(buf.String(), "WARN [svc-prefix>] careful") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDebugGating(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	l := ForService("svc-debug")
	l.Debugf("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug printed while disabled: %q", buf.String())
	}

	EnableDebugFor("svc-debug")
	l.Debugf("visible")
	if !strings.Contains(buf.String(), "DEBUG [svc-debug>] visible") {
		t.Errorf("debug not printed for enabled service: %q", buf.String())
	}

	other := ForService("svc-quiet")
	buf.Reset()
	other.Debugf("still hidden")
	if buf.Len() != 0 {
		t.Errorf("per-service debug leaked to another service: %q", buf.String())
	}

	SetGlobalDebug(true)
	defer SetGlobalDebug(false)
	other.Debugf("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("global debug did not apply: %q", buf.String())
	}
}

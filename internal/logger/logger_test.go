package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetGlobal(t *testing.T) {
	t.Cleanup(func() { SetGlobal(nil, false) })

	var buf bytes.Buffer
	SetGlobal(New(&buf, true), true)

	if !IsDebug() {
		t.Error("IsDebug() = false after enabling debug")
	}
	Get().Debug("Wrote artifact", "path", "ddl/CU_Customer.sql")
	if !strings.Contains(buf.String(), "path=ddl/CU_Customer.sql") {
		t.Errorf("debug record not written: %q", buf.String())
	}
}

func TestInfoLevelDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Info("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

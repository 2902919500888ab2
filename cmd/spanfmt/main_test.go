package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("SPANFMT_CULTURE", "")
	t.Setenv("SPANFMT_NO_COLOR", "")
	t.Setenv("NO_COLOR", "")
	t.Setenv("SPANFMT_DEBUG", "")

	var out, errBuf bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestRun_FormatDuration(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "format", "-p", "H:mm", "0:01:30:00")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "1:30\n", stdout)
}

func TestRun_ParseDuration_EmitsRoundTripForm(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "parse", "-p", "H:mm", "26:30")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "1:02:30:00\n", stdout)
}

func TestRun_ParseYearMonth(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "parse", "-p", "uuuu/MM", "-kind", "yearmonth", "2026/07")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "2026-07 ISO\n", stdout)
}

func TestRun_FormatYearMonth_WithCultureFlag(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "format", "-p", "uuuu/MM", "-kind", "yearmonth", "-culture", "fi-FI", "2026-07 ISO")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "2026.07\n", stdout)
}

func TestRun_ReadsValuesFromStdin(t *testing.T) {
	code, stdout, _ := runCLI(t, "1:30\n26:00\n", "parse", "-p", "H:mm")
	assert.Equal(t, 0, code)
	assert.Equal(t, "0:01:30:00\n1:02:00:00\n", stdout)
}

func TestRun_ParseFailure_RendersDiagnosticAndContinues(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "parse", "-p", "H:mm", "1:60", "1:30")
	assert.Equal(t, 1, code)
	assert.Equal(t, "0:01:30:00\n", stdout)
	assert.Contains(t, stderr, "parse error")
	assert.Contains(t, stderr, "out of range")
}

func TestRun_BadPattern_FailsUpFront(t *testing.T) {
	code, _, stderr := runCLI(t, "", "format", "-p", "hhh", "0:00:00:00")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "pattern error")
}

func TestRun_UsageErrors(t *testing.T) {
	code, _, stderr := runCLI(t, "", "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown command")

	code, _, stderr = runCLI(t, "", "format")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "requires -p")

	code, _, stderr = runCLI(t, "", "parse", "-p", "H:mm", "-kind", "weeks", "1:00")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown kind")
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "spanfmt")
}

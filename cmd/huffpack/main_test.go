package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func noEnv(string) (string, bool) {
	return "", false
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("os.WriteFile failed: %v", err)
	}
}

func expectNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s not to exist, got err=%v", path, err)
	}
}

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := []byte("the quick brown fox jumps over the lazy dog\n")
	inPath := filepath.Join(dir, "in.txt")
	packedPath := filepath.Join(dir, "in.huff")
	outPath := filepath.Join(dir, "out.txt")
	writeFile(t, inPath, original)

	var stderr bytes.Buffer
	if code := run([]string{"compress", inPath, packedPath}, &stderr, noEnv); code != 0 {
		t.Fatalf("compress exited %d: %s", code, stderr.String())
	}
	if code := run([]string{"decompress", packedPath, outPath}, &stderr, noEnv); code != 0 {
		t.Fatalf("decompress exited %d: %s", code, stderr.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("expected no diagnostics, got %q", stderr.String())
	}

	actual, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("os.ReadFile failed: %v", err)
	}
	if !bytes.Equal(original, actual) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", original, actual)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, ".*"))
	if len(matches) != 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}

func TestRun_DebugLogging(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.txt")
	writeFile(t, inPath, []byte("AAAAABBBCC"))

	env := func(key string) (string, bool) {
		if key == "HUFFPACK_LOG_LEVEL" {
			return "debug", true
		}
		return "", false
	}

	var stderr bytes.Buffer
	if code := run([]string{"compress", inPath, filepath.Join(dir, "out")}, &stderr, env); code != 0 {
		t.Fatalf("compress exited %d: %s", code, stderr.String())
	}
	for _, want := range []string{"FrequencyTable{", "Tree{", "CodeTable{", "Encode(65) = \"0\"", "[INFO] compress:"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("expected log to contain %q, got:\n%s", want, stderr.String())
		}
	}
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()
	goodPath := filepath.Join(dir, "good.txt")
	writeFile(t, goodPath, []byte("hello, world"))
	corruptPath := filepath.Join(dir, "corrupt.huff")
	writeFile(t, corruptPath, []byte{0x00, 0x05, 'a'})

	type testRow struct {
		name    string
		args    []string
		message string
		output  string
	}

	testData := [...]testRow{
		{name: "no args", args: nil, message: "usage:"},
		{name: "too few", args: []string{"compress", goodPath}, message: "usage:"},
		{name: "too many", args: []string{"compress", goodPath, "x", "y"}, message: "usage:"},
		{name: "unknown command", args: []string{"squash", goodPath, filepath.Join(dir, "o1")}, message: "unknown command", output: filepath.Join(dir, "o1")},
		{name: "missing input", args: []string{"compress", filepath.Join(dir, "nope"), filepath.Join(dir, "o2")}, message: "read input:", output: filepath.Join(dir, "o2")},
		{name: "corrupt input", args: []string{"decompress", corruptPath, filepath.Join(dir, "o3")}, message: "decode:", output: filepath.Join(dir, "o3")},
		{name: "unwritable output", args: []string{"compress", goodPath, filepath.Join(dir, "missing", "o4")}, message: "write output:", output: filepath.Join(dir, "missing", "o4")},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if code := run(row.args, &stderr, noEnv); code != 1 {
				t.Errorf("expected exit status 1, got %d", code)
			}
			if !strings.Contains(stderr.String(), row.message) {
				t.Errorf("expected diagnostic containing %q, got %q", row.message, stderr.String())
			}
			if n := strings.Count(stderr.String(), "\n"); n != 1 {
				t.Errorf("expected a single diagnostic line, got %d", n)
			}
			if row.output != "" {
				expectNoFile(t, row.output)
			}
		})
	}
}

func TestRun_BadConfig(t *testing.T) {
	env := func(key string) (string, bool) {
		if key == "HUFFPACK_FILE_MODE" {
			return "not-octal", true
		}
		return "", false
	}
	var stderr bytes.Buffer
	if code := run([]string{"compress", "a", "b"}, &stderr, env); code != 1 {
		t.Errorf("expected exit status 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "HUFFPACK_FILE_MODE") {
		t.Errorf("expected diagnostic naming HUFFPACK_FILE_MODE, got %q", stderr.String())
	}
}

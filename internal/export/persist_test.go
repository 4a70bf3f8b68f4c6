package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs", "data")

	artifacts, err := WriteArtifacts(dir, sampleResult(), false)
	if err != nil {
		t.Fatalf("WriteArtifacts() error = %v", err)
	}
	if artifacts.JSONPath != filepath.Join(dir, LatestJSONName) || artifacts.CSVPath != filepath.Join(dir, LatestCSVName) {
		t.Fatalf("unexpected artifact paths: %+v", artifacts)
	}

	csvData, err := os.ReadFile(artifacts.CSVPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if string(csvData) != string(EncodeCSV(sampleResult())) {
		t.Fatalf("csv artifact differs from EncodeCSV()")
	}
	if _, err := os.Stat(artifacts.JSONPath); err != nil {
		t.Fatalf("json artifact missing: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected only the two artifacts, found %d entries", len(entries))
	}
}

func TestWriteArtifactsUnwritableDestination(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteArtifacts(filepath.Join(blocker, "out"), sampleResult(), false); err == nil {
		t.Fatalf("WriteArtifacts() error = nil, want error")
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no partial output, found %d entries", len(entries))
	}
}

func TestWriteArtifactsRestoresJSONWhenCSVFails(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, LatestJSONName)
	if err := os.WriteFile(jsonPath, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A non-empty directory where latest.csv belongs makes the CSV rename fail.
	if err := os.MkdirAll(filepath.Join(dir, LatestCSVName, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteArtifacts(dir, sampleResult(), false); err == nil {
		t.Fatalf("WriteArtifacts() error = nil, want csv rename error")
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if string(data) != "previous" {
		t.Fatalf("latest.json = %q, want the previous contents", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected only the old artifacts, found %d entries", len(entries))
	}
}

func TestWriteArtifactsRemovesNewJSONWhenCSVFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, LatestCSVName, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteArtifacts(dir, sampleResult(), false); err == nil {
		t.Fatalf("WriteArtifacts() error = nil, want csv rename error")
	}
	if _, err := os.Stat(filepath.Join(dir, LatestJSONName)); !os.IsNotExist(err) {
		t.Fatalf("latest.json left behind after a failed write")
	}
}

func TestWriteArtifactsOverwritesPrevious(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LatestJSONName), []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	artifacts, err := WriteArtifacts(dir, sampleResult(), false)
	if err != nil {
		t.Fatalf("WriteArtifacts() error = %v", err)
	}
	data, err := os.ReadFile(artifacts.JSONPath)
	if err != nil || string(data) == "previous" {
		t.Fatalf("latest.json not replaced: %q, %v", data, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Fatalf("backup left behind: %d entries", len(entries))
	}
}

func TestArtifactNames(t *testing.T) {
	jsonName, csvName := ArtifactNames(false, time.Now())
	if jsonName != LatestJSONName || csvName != LatestCSVName {
		t.Fatalf("ArtifactNames(false) = %s, %s", jsonName, csvName)
	}

	at := time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local)
	jsonName, csvName = ArtifactNames(true, at)
	if jsonName != "2024-03-01_09-05-07.json" || csvName != "2024-03-01_09-05-07.csv" {
		t.Fatalf("ArtifactNames(true) = %s, %s", jsonName, csvName)
	}
}

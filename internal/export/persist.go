package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jimezsa/jobradar/internal/models"
)

const (
	LatestJSONName = "latest.json"
	LatestCSVName  = "latest.csv"
)

// Artifacts are the paths written by WriteArtifacts.
type Artifacts struct {
	JSONPath string
	CSVPath  string
}

// ArtifactNames returns the file names for a run. Stamped names follow the
// YYYY-MM-DD_HH-MM-SS pattern in local time.
func ArtifactNames(stamped bool, at time.Time) (string, string) {
	if !stamped {
		return LatestJSONName, LatestCSVName
	}
	base := at.Local().Format("2006-01-02_15-04-05")
	return base + ".json", base + ".csv"
}

// WriteArtifacts writes both documents into dir or neither. Both are rendered
// and staged as temporary files first; the renames only happen once staging
// succeeded.
func WriteArtifacts(dir string, result models.RunResult, stamped bool) (Artifacts, error) {
	jsonData, err := EncodeJSON(result)
	if err != nil {
		return Artifacts{}, fmt.Errorf("encode json: %w", err)
	}
	csvData := EncodeCSV(result)

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifacts{}, fmt.Errorf("create output dir: %w", err)
	}

	jsonName, csvName := ArtifactNames(stamped, result.GeneratedAt)
	artifacts := Artifacts{
		JSONPath: filepath.Join(dir, jsonName),
		CSVPath:  filepath.Join(dir, csvName),
	}

	jsonTmp, err := stage(dir, jsonName, jsonData)
	if err != nil {
		return Artifacts{}, err
	}
	csvTmp, err := stage(dir, csvName, csvData)
	if err != nil {
		_ = os.Remove(jsonTmp)
		return Artifacts{}, err
	}

	backup, err := keepPrevious(dir, jsonName)
	if err != nil {
		return Artifacts{}, errors.Join(err, os.Remove(jsonTmp), os.Remove(csvTmp))
	}
	if err := os.Rename(jsonTmp, artifacts.JSONPath); err != nil {
		return Artifacts{}, errors.Join(fmt.Errorf("write %s: %w", artifacts.JSONPath, err), os.Remove(jsonTmp), os.Remove(csvTmp), discard(backup))
	}
	if err := os.Rename(csvTmp, artifacts.CSVPath); err != nil {
		return Artifacts{}, errors.Join(fmt.Errorf("write %s: %w", artifacts.CSVPath, err), os.Remove(csvTmp), restore(artifacts.JSONPath, backup))
	}
	return artifacts, discard(backup)
}

// keepPrevious hard-links an existing dir/name to a hidden backup so a failed
// CSV rename can put the old JSON back. It returns "" when there is nothing
// to keep.
func keepPrevious(dir, name string) (string, error) {
	current := filepath.Join(dir, name)
	backup := filepath.Join(dir, "."+name+".prev")
	if err := os.Remove(backup); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("backup %s: %w", name, err)
	}
	if err := os.Link(current, backup); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("backup %s: %w", name, err)
	}
	return backup, nil
}

// restore puts the backup back at path, or removes path when there was none.
func restore(path, backup string) error {
	if backup == "" {
		return os.Remove(path)
	}
	return os.Rename(backup, path)
}

func discard(backup string) error {
	if backup == "" {
		return nil
	}
	return os.Remove(backup)
}

func stage(dir, name string, data []byte) (string, error) {
	file, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	tmp := file.Name()
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	return tmp, nil
}

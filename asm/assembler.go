package asm

import (
	"os"
	"path/filepath"
	"strings"
)

// AssembleSource runs both passes over in-memory source lines and returns
// the final object-file image: a buffer-based entry point that file-based
// helpers build on top of.
func AssembleSource(lines []string) ([]byte, error) {
	a, err := runPass1(lexSource(lines))
	if err != nil {
		return nil, err
	}
	return runPass2(a)
}

// AssembleFile reads path, assembles it, and writes the object file to
// outPath atomically: temp file in outPath's directory, then rename.
func AssembleFile(path, outPath string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return newError(KindUsage, 0, "Could not read input file '%s'", path)
	}

	lines := strings.Split(string(raw), "\n")
	image, err := AssembleSource(lines)
	if err != nil {
		return err
	}
	return writeFileAtomic(outPath, image)
}

// writeFileAtomic writes data to path by first writing a temp file in the
// same directory, then renaming it into place, so a crash mid-write never
// leaves a truncated object file on disk.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".asm4380-*.tmp")
	if err != nil {
		return newError(KindIO, 0, "Could not create output file: %v", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return newError(KindIO, 0, "Could not write output file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return newError(KindIO, 0, "Could not write output file: %v", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return newError(KindIO, 0, "Could not finalize output file: %v", err)
	}
	return nil
}

// OutputPath derives the '.bin' object path from an '.asm' source path by
// suffix substitution.
func OutputPath(inputPath string) (string, bool) {
	if !strings.HasSuffix(inputPath, ".asm") {
		return "", false
	}
	return strings.TrimSuffix(inputPath, ".asm") + ".bin", true
}

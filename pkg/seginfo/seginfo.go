// Package seginfo provides utilities for discovering and naming segment
// files in a log-structured storage directory.
//
// Filename Format: `<gen>.log`, where `gen` is a base-10, non-negative
// `uint64` with no padding. Segments sort correctly by generation only
// through numeric parsing, not lexicographically (a generation can grow
// past a fixed digit width), so discovery always parses and sorts
// numerically rather than relying on string order.
package seginfo

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/wealrain/ignitekv/pkg/filesys"
)

const extension = ".log"

// GenerateName returns the filename for segment generation gen.
func GenerateName(gen uint64) string {
	return fmt.Sprintf("%d%s", gen, extension)
}

// Path joins dataDir and the filename for segment generation gen.
func Path(dataDir string, gen uint64) string {
	return filepath.Join(dataDir, GenerateName(gen))
}

// ParseGen extracts the generation number from a segment filename or path.
// It returns false if the name doesn't match the `<gen>.log` format.
func ParseGen(name string) (uint64, bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, extension) {
		return 0, false
	}

	stem := strings.TrimSuffix(base, extension)
	gen, err := strconv.ParseUint(stem, 10, 64)
	if err != nil {
		return 0, false
	}

	return gen, true
}

// SortedGenList enumerates every `<gen>.log` file in dataDir and returns
// their generation numbers in ascending order. Files that do not match the
// naming convention are ignored.
func SortedGenList(dataDir string) ([]uint64, error) {
	matches, err := filesys.ReadDir(filepath.Join(dataDir, "*"+extension))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for segment files: %w", dataDir, err)
	}

	gens := make([]uint64, 0, len(matches))
	for _, match := range matches {
		gen, ok := ParseGen(match)
		if !ok {
			continue
		}
		gens = append(gens, gen)
	}

	slices.Sort(gens)
	return gens, nil
}

// GetFileInfo safely retrieves file system metadata for a given path.
func GetFileInfo(filePath string) (os.FileInfo, error) {
	file, err := os.OpenFile(filePath, os.O_RDONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for %s: %w", filePath, err)
	}

	return stat, nil
}

package test_utils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

type Resource string

const (
	// Valid, with manual chains, a branch and a merge
	SideBySide Resource = "side-by-side.yaml"
	// Valid, JSON flavour
	Voice Resource = "voice.json"
	// Two chains feeding each other
	Cycle Resource = "cycle.yaml"
	// One chain reading a label nobody writes
	Unconnected Resource = "unconnected.yaml"
	// Cannot be built, unknown op
	Broken Resource = "broken.yaml"
)
const (
	ResPath = "../resources/test"
)

func GetResAbsolutePath(t *testing.T, r Resource) string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Couldn't get current file path")
	}
	dir := filepath.Dir(filename)
	return filepath.Join(dir, ResPath, string(r))
}

func GetResContent(t *testing.T, r Resource) []byte {
	content, err := os.ReadFile(GetResAbsolutePath(t, r))
	if err != nil {
		t.Fatal(err)
	}
	return content
}

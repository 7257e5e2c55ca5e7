//go:build mage

// Package main contains Mage build targets for aeo-corpus developer tooling.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// All builds the binary after running the test suite.
func All() {
	mg.SerialDeps(Test, Build)
}

// projectDirs lists the working directories an extraction run expects.
var projectDirs = []string{
	"aeo_extracted_data/text_corpus",
	"aeo_extracted_data/index",
	".secrets",
}

// Init creates the project directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "aeo-corpus"
	cmdPkg  = "./cmd/aeo-corpus"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	cmd := exec.Command("go", "build", "-o", out, cmdPkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the full test suite.
func Test() error {
	cmd := exec.Command("go", "test", "./...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go test: %w", err)
	}
	return nil
}

// Stats prints metrics for the last extraction run in aeo_extracted_data/.
func Stats() error {
	metaPath := filepath.Join("aeo_extracted_data", "document_metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No extraction run found. Run `aeo-corpus run` first.")
			return nil
		}
		return fmt.Errorf("reading %s: %w", metaPath, err)
	}

	var docs []struct {
		Year       int    `json:"year"`
		DocType    string `json:"doc_type"`
		TotalPages int    `json:"total_pages"`
	}
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("parsing %s: %w", metaPath, err)
	}

	pages := 0
	byType := make(map[string]int)
	for _, doc := range docs {
		pages += doc.TotalPages
		byType[doc.DocType]++
	}

	fmt.Printf("Documents: %d\n", len(docs))
	fmt.Printf("Pages:     %d\n", pages)
	for docType, count := range byType {
		fmt.Printf("  %-22s %d\n", docType, count)
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binDir); err != nil {
		return fmt.Errorf("removing %s: %w", binDir, err)
	}
	fmt.Println("Removed", binDir+string(filepath.Separator))
	return nil
}

package main_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const defaultOutputFileName = "estructura_proyecto.txt"

// #nosec G204
func buildBinary(testingHandle *testing.T) string {
	testingHandle.Helper()
	binaryName := "dirtree_integration_test_binary"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath := filepath.Join(testingHandle.TempDir(), binaryName)

	buildCommand := exec.Command("go", "build", "-o", binaryPath, ".")
	buildOutput, buildError := buildCommand.CombinedOutput()
	if buildError != nil {
		testingHandle.Fatalf("build binary: %v\n%s", buildError, buildOutput)
	}
	return binaryPath
}

// #nosec G204
func runBinary(testingHandle *testing.T, binaryPath string, workingDirectory string, arguments ...string) (string, int) {
	testingHandle.Helper()
	command := exec.Command(binaryPath, arguments...)
	command.Dir = workingDirectory
	var standardOutput bytes.Buffer
	command.Stdout = &standardOutput
	command.Stderr = &standardOutput

	runError := command.Run()
	if runError == nil {
		return standardOutput.String(), 0
	}
	var exitError *exec.ExitError
	if !errors.As(runError, &exitError) {
		testingHandle.Fatalf("run %s %s: %v", filepath.Base(binaryPath), strings.Join(arguments, " "), runError)
	}
	return standardOutput.String(), exitError.ExitCode()
}

func setupTestDirectory(testingHandle *testing.T, layout map[string]string) string {
	testingHandle.Helper()
	rootDirectory := testingHandle.TempDir()
	for relativePath, content := range layout {
		absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		if err := os.MkdirAll(filepath.Dir(absolutePath), 0o755); err != nil {
			testingHandle.Fatalf("mkdir %s: %v", relativePath, err)
		}
		if err := os.WriteFile(absolutePath, []byte(content), 0o644); err != nil {
			testingHandle.Fatalf("write %s: %v", relativePath, err)
		}
	}
	return rootDirectory
}

func TestDirtreeBinary(testingHandle *testing.T) {
	binaryPath := buildBinary(testingHandle)

	testingHandle.Run("writes default output in working directory", func(testingHandle *testing.T) {
		projectDirectory := setupTestDirectory(testingHandle, map[string]string{
			"main.py":                 "print('hi')",
			"__pycache__/main.pyc":    "",
			".git/HEAD":               "ref",
			"docs/guide.md":           "# guide",
			"docs/.gitkeep":           "",
			"debug.log":               "noise",
			"node_modules/x/index.js": "",
		})
		stdout, exitCode := runBinary(testingHandle, binaryPath, projectDirectory)
		if exitCode != 0 {
			testingHandle.Fatalf("unexpected exit code %d\n%s", exitCode, stdout)
		}
		expectedStdout := "Tree written to: " + defaultOutputFileName + "\nTotal lines: 5\n"
		if stdout != expectedStdout {
			testingHandle.Fatalf("expected stdout %q, got %q", expectedStdout, stdout)
		}
		stored, readError := os.ReadFile(filepath.Join(projectDirectory, defaultOutputFileName))
		if readError != nil {
			testingHandle.Fatalf("read output: %v", readError)
		}
		expectedTree := strings.Join([]string{
			filepath.Base(projectDirectory) + "/",
			"├── docs/",
			"│   ├── .gitkeep",
			"│   └── guide.md",
			"└── main.py",
		}, "\n")
		if string(stored) != expectedTree {
			testingHandle.Fatalf("unexpected tree:\n%s", stored)
		}
	})

	testingHandle.Run("missing root exits with status one", func(testingHandle *testing.T) {
		workingDirectory := testingHandle.TempDir()
		stdout, exitCode := runBinary(testingHandle, binaryPath, workingDirectory, "does-not-exist")
		if exitCode != 1 {
			testingHandle.Fatalf("expected exit code 1, got %d\n%s", exitCode, stdout)
		}
		if !strings.Contains(stdout, "Error:") || !strings.Contains(stdout, "does-not-exist") {
			testingHandle.Fatalf("expected error message on stdout, got %q", stdout)
		}
		if _, statError := os.Stat(filepath.Join(workingDirectory, defaultOutputFileName)); !errors.Is(statError, os.ErrNotExist) {
			testingHandle.Fatalf("output file must not be created, stat error: %v", statError)
		}
	})

	testingHandle.Run("explicit output and exclusion", func(testingHandle *testing.T) {
		projectDirectory := setupTestDirectory(testingHandle, map[string]string{
			"src/app.go":        "package app",
			"fixtures/big.json": "{}",
		})
		outputPath := filepath.Join(testingHandle.TempDir(), "tree.txt")
		stdout, exitCode := runBinary(testingHandle, binaryPath, projectDirectory, ".", "-o", outputPath, "-e", "fixtures", "-d", "1")
		if exitCode != 0 {
			testingHandle.Fatalf("unexpected exit code %d\n%s", exitCode, stdout)
		}
		stored, readError := os.ReadFile(outputPath)
		if readError != nil {
			testingHandle.Fatalf("read output: %v", readError)
		}
		expectedTree := filepath.Base(projectDirectory) + "/\n└── src/"
		if string(stored) != expectedTree {
			testingHandle.Fatalf("unexpected tree:\n%s", stored)
		}
	})
}

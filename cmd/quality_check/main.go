package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	ModuleName  = "image-binarizer"
	GoMinor     = 24
	BuildTarget = "./cmd/image-binarizer"
	ColorGreen  = "\033[0;32m"
	ColorRed    = "\033[0;31m"
	ColorYellow = "\033[1;33m"
	ColorReset  = "\033[0m"
)

type check struct {
	name string
	args []string
}

var coreChecks = []check{
	{"go vet", []string{"go", "vet", "./..."}},
	{"tests with race detection", []string{"go", "test", "-race", "-short", "./..."}},
	{"dependency management", []string{"go", "mod", "tidy", "-diff"}},
	{"module verification", []string{"go", "mod", "verify"}},
}

type QualityChecker struct {
	checksPassed int
	checksFailed int
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/quality_check [check|fast|format]")
		os.Exit(1)
	}

	qc := &QualityChecker{}

	switch os.Args[1] {
	case "check":
		qc.validateEnvironment()
		qc.checkFormatting()
		qc.runChecks(coreChecks)
		qc.runStaticcheck()
		qc.checkBuild()
	case "fast":
		qc.validateEnvironment()
		qc.checkFormatting()
		qc.checkBuild()
	case "format":
		qc.checkFormatting()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	qc.generateSummary()
	if qc.checksFailed > 0 {
		os.Exit(1)
	}
}

func (qc *QualityChecker) validateEnvironment() {
	fmt.Println("Validating environment...")

	output, err := qc.runCommand("go", "version")
	if err != nil {
		qc.fail("Go not found")
		return
	}

	matches := regexp.MustCompile(`go1\.(\d+)`).FindStringSubmatch(output)
	if len(matches) < 2 {
		qc.fail("Unable to parse Go version")
	} else if minor, _ := strconv.Atoi(matches[1]); minor < GoMinor {
		qc.fail(fmt.Sprintf("Go 1.%d or newer required, found 1.%d", GoMinor, minor))
	} else {
		qc.success(fmt.Sprintf("Go version 1.%d", minor))
	}

	if name := qc.moduleName(); name != ModuleName {
		qc.fail(fmt.Sprintf("Module name mismatch: expected '%s', got '%s'", ModuleName, name))
	} else {
		qc.success(fmt.Sprintf("Module '%s'", name))
	}

	// gocv links against the system OpenCV through cgo.
	if version, err := qc.runCommand("pkg-config", "--modversion", "opencv4"); err != nil {
		qc.fail("OpenCV 4 not found by pkg-config")
	} else {
		qc.success(fmt.Sprintf("OpenCV %s", strings.TrimSpace(version)))
	}

	if _, err := os.Stat("fotos"); err != nil {
		qc.warn("fotos/ not present; a run would skip every role")
	}
}

func (qc *QualityChecker) checkFormatting() {
	fmt.Println("Checking code formatting...")

	output, err := qc.runCommand("gofmt", "-l", "cmd", "internal")
	if err != nil {
		qc.fail("gofmt check failed")
		return
	}

	unformatted := strings.Fields(output)
	if len(unformatted) == 0 {
		qc.success("All Go files formatted")
		return
	}
	qc.fail(fmt.Sprintf("Unformatted files found: %s", strings.Join(unformatted, ", ")))
	fmt.Printf("   Run: gofmt -w %s\n", strings.Join(unformatted, " "))
}

func (qc *QualityChecker) runChecks(checks []check) {
	fmt.Println("Running core quality checks...")

	for _, c := range checks {
		if err := exec.Command(c.args[0], c.args[1:]...).Run(); err != nil {
			qc.fail(fmt.Sprintf("%s failed", c.name))
		} else {
			qc.success(fmt.Sprintf("%s passed", c.name))
		}
	}
}

func (qc *QualityChecker) runStaticcheck() {
	path, err := exec.LookPath("staticcheck")
	if err != nil {
		qc.warn("staticcheck not available")
		return
	}

	output, err := qc.runCommand(path, "-checks=all,-SA1019", "./...")
	if err != nil {
		qc.fail("staticcheck found issues:")
		fmt.Print(output)
		return
	}
	qc.success("staticcheck passed")
}

func (qc *QualityChecker) checkBuild() {
	fmt.Println("Verifying build...")

	dir, err := os.MkdirTemp("", ModuleName)
	if err != nil {
		qc.fail("Could not create build directory")
		return
	}
	defer os.RemoveAll(dir)

	binary := filepath.Join(dir, ModuleName)
	if output, err := qc.runCommand("go", "build", "-o", binary, BuildTarget); err != nil {
		qc.fail("Build failed")
		fmt.Print(output)
		return
	}
	qc.success("Build successful")

	if _, err := qc.runCommand(binary, "--version"); err != nil {
		qc.fail("Binary did not start")
		return
	}
	qc.success("Binary starts")
}

func (qc *QualityChecker) success(message string) {
	fmt.Printf("%s✓%s %s\n", ColorGreen, ColorReset, message)
	qc.checksPassed++
}

func (qc *QualityChecker) fail(message string) {
	fmt.Printf("%s✗%s %s\n", ColorRed, ColorReset, message)
	qc.checksFailed++
}

func (qc *QualityChecker) warn(message string) {
	fmt.Printf("%s⚠%s %s\n", ColorYellow, ColorReset, message)
}

func (qc *QualityChecker) generateSummary() {
	fmt.Println("\n==================================")
	fmt.Println("Quality Check Summary")
	fmt.Println("==================================")
	fmt.Printf("Passed: %d\n", qc.checksPassed)
	fmt.Printf("Failed: %d\n\n", qc.checksFailed)

	if qc.checksFailed == 0 {
		fmt.Printf("%sAll quality checks passed%s\n", ColorGreen, ColorReset)
	} else {
		fmt.Printf("%s%d quality checks failed%s\n", ColorRed, qc.checksFailed, ColorReset)
	}
}

func (qc *QualityChecker) runCommand(command string, args ...string) (string, error) {
	output, err := exec.Command(command, args...).CombinedOutput()
	return string(output), err
}

func (qc *QualityChecker) moduleName() string {
	content, err := os.ReadFile("go.mod")
	if err != nil {
		return ""
	}

	for _, line := range strings.Split(string(content), "\n") {
		if parts := strings.Fields(line); len(parts) == 2 && parts[0] == "module" {
			return parts[1]
		}
	}
	return ""
}

package magetasks

// TestAll runs the full test suite.
func TestAll() error {
	PrintH2Header("Tests")

	if err := Run("go test", "go", "test", "./..."); err != nil {
		PrintError("Tests failed")
		return err
	}
	PrintSuccess("All tests passed")
	return nil
}

// TestCoverage runs the suite with a coverage profile and prints the
// per-function report.
func TestCoverage() error {
	PrintH2Header("Test Coverage")

	if err := Run("go test -cover", "go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		PrintError("Tests failed")
		return err
	}
	// The report is informational; a profile that fails to render is not a
	// task failure.
	_ = Run("coverage report", "go", "tool", "cover", "-func=coverage.out")

	PrintSuccess("Coverage report generated")
	return nil
}

// TestRace runs the suite under the race detector.
func TestRace() error {
	PrintH2Header("Race Detector")

	if err := Run("go test -race", "go", "test", "-race", "./..."); err != nil {
		PrintError("Race detector found issues")
		return err
	}
	PrintSuccess("No race conditions detected")
	return nil
}

// Package report writes test results in formats that other tools can consume.
//
// WriteAllureResults produces an Allure results directory, which the Allure command-line tool
// can render as an HTML report grouped by feature. WriteSummary produces a single JSON file
// that is easier for CI scripts to inspect.
package report

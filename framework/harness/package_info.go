// Package harness contains the HTTP side of the test framework: sending requests to the
// service under test, and creating resources in it that must be deleted again afterward.
package harness

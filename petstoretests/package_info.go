// Package petstoretests contains the Pet Store contract tests themselves and their supporting
// API.
//
// Test harness infrastructure that is not specific to the Pet Store, such as sending requests
// to the service and the test context, is in the lower-level framework packages.
package petstoretests

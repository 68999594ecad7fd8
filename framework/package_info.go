// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to the Pet Store. The base package contains shared types such as
// Logger; other components are in the subpackages harness and ldtest.
//
// The general model is:
//
// 1. The test harness talks to a remote HTTP service over a fixed base URL. It can send
// arbitrary requests to it, and it can create resources in it (POST) that it is responsible
// for deleting again (DELETE) when a test is done with them.
//
// 2. There is a general notion of a test context which is similar to Go's testing.T,
// allowing pieces of test logic to be associated with a test identifier, to be broken up
// into named steps, and to accumulate success/failure results.
//
// The domain-specific code that knows what is being tested is responsible for providing
// the request payloads, the expected responses, and a domain-specific test API on top of
// the test context.
package framework

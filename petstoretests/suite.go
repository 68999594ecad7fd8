package petstoretests

import (
	"github.com/petstore-qa/petstore-contract-tests/framework/harness"
	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"
)

// Feature names. Every test is in exactly one of these top-level groups.
const (
	FeaturePet   = "Pet"
	FeatureStore = "Store"
)

// RunTestSuite runs every Pet Store contract test against the service that client points to.
//
// Tests run sequentially. A failure in one test does not stop the others.
func RunTestSuite(
	client *harness.ServiceClient,
	filter ldtest.Filter,
	testLogger ldtest.TestLogger,
) ldtest.Results {
	config := ldtest.TestConfiguration{
		Filter:     filter,
		TestLogger: testLogger,
		Context:    PetStoreTestContext{client: client},
	}
	return ldtest.Run(config, func(t *ldtest.T) {
		t.Run(FeaturePet, DoPetTests)
		t.Run(FeatureStore, DoStoreTests)
	})
}

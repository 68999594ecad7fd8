package petstoretests

import (
	"github.com/petstore-qa/petstore-contract-tests/framework/harness"
	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"
)

type PetStoreTestContext struct {
	client *harness.ServiceClient
}

func requireContext(t *ldtest.T) PetStoreTestContext {
	if c, ok := t.Context().(PetStoreTestContext); ok {
		return c
	}
	panic("PetStoreTestContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}

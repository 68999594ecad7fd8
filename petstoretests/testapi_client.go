package petstoretests

import (
	"net/http"
	"net/url"

	"github.com/petstore-qa/petstore-contract-tests/framework/harness"
	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"
	"github.com/petstore-qa/petstore-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
)

// PetStoreClient sends Pet Store API requests on behalf of one test. Its request log goes to
// the debug output of that test.
//
// Every method fails the test and immediately exits if the request could not be sent at all.
// HTTP error statuses are returned like any other response, so that the test can make
// assertions about them.
type PetStoreClient struct {
	client *harness.ServiceClient
}

// NewPetStoreClient creates a PetStoreClient for the current test.
func NewPetStoreClient(t *ldtest.T) *PetStoreClient {
	return &PetStoreClient{client: requireContext(t).client.WithLogger(t.DebugLogger())}
}

// Request sends an arbitrary request.
func (c *PetStoreClient) Request(
	t *ldtest.T,
	method, path string,
	payload interface{},
	query url.Values,
) harness.Response {
	resp, err := c.client.Do(method, path, payload, query)
	require.NoError(t, err, "request could not be sent")
	return resp
}

func (c *PetStoreClient) AddPet(t *ldtest.T, pet interface{}) harness.Response {
	return c.Request(t, http.MethodPost, servicedef.PetPath, pet, nil)
}

func (c *PetStoreClient) UpdatePet(t *ldtest.T, pet interface{}) harness.Response {
	return c.Request(t, http.MethodPut, servicedef.PetPath, pet, nil)
}

func (c *PetStoreClient) GetPet(t *ldtest.T, id int64) harness.Response {
	return c.Request(t, http.MethodGet, servicedef.PetResourcePath(id), nil, nil)
}

func (c *PetStoreClient) DeletePet(t *ldtest.T, id int64) harness.Response {
	return c.Request(t, http.MethodDelete, servicedef.PetResourcePath(id), nil, nil)
}

func (c *PetStoreClient) FindPetsByStatus(t *ldtest.T, status string) harness.Response {
	return c.Request(t, http.MethodGet, servicedef.PetFindByStatusPath, nil,
		url.Values{servicedef.FindByStatusQueryKey: {status}})
}

func (c *PetStoreClient) PlaceOrder(t *ldtest.T, order interface{}) harness.Response {
	return c.Request(t, http.MethodPost, servicedef.StoreOrderPath, order, nil)
}

func (c *PetStoreClient) GetOrder(t *ldtest.T, id int64) harness.Response {
	return c.Request(t, http.MethodGet, servicedef.OrderResourcePath(id), nil, nil)
}

func (c *PetStoreClient) DeleteOrder(t *ldtest.T, id int64) harness.Response {
	return c.Request(t, http.MethodDelete, servicedef.OrderResourcePath(id), nil, nil)
}

func (c *PetStoreClient) GetInventory(t *ldtest.T) harness.Response {
	return c.Request(t, http.MethodGet, servicedef.StoreInventoryPath, nil, nil)
}

package petstoretests

import (
	"net/http"

	"github.com/petstore-qa/petstore-contract-tests/framework/harness"
	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"
	"github.com/petstore-qa/petstore-contract-tests/schemas"
	"github.com/petstore-qa/petstore-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

// nonexistentID is an ID that the service is assumed never to have a resource for.
const nonexistentID = 9999

func DoPetTests(t *ldtest.T) {
	t.Run("delete nonexistent pet", func(t *ldtest.T) {
		client := NewPetStoreClient(t)

		// The service reports success for deleting a pet that does not exist.
		var resp harness.Response
		t.Step("send delete request", func() { resp = client.DeletePet(t, nonexistentID) })
		t.Step("check status", func() { RequireStatus(t, resp, http.StatusOK) })
		t.Step("check body text", func() { AssertBodyText(t, resp, servicedef.PetDeleted) })
	})

	t.Run("update nonexistent pet", func(t *ldtest.T) {
		client := NewPetStoreClient(t)

		var resp harness.Response
		t.Step("send update request", func() {
			pet := servicedef.Pet{ID: nonexistentID, Name: "Non-existent Pet", Status: servicedef.PetStatusAvailable}
			resp = client.UpdatePet(t, pet)
		})
		t.Step("check status", func() { RequireStatus(t, resp, http.StatusNotFound) })
		t.Step("check body text", func() { AssertBodyText(t, resp, servicedef.PetNotFound) })
	})

	t.Run("get nonexistent pet", func(t *ldtest.T) {
		client := NewPetStoreClient(t)

		var resp harness.Response
		t.Step("send get request", func() { resp = client.GetPet(t, nonexistentID) })
		t.Step("check status", func() { RequireStatus(t, resp, http.StatusNotFound) })
		t.Step("check body text", func() { AssertBodyText(t, resp, servicedef.PetNotFound) })
	})

	t.Run("add pet", func(t *ldtest.T) {
		doAddPetTest(t, func() servicedef.Pet {
			return servicedef.Pet{ID: 1, Name: "Buddy", Status: servicedef.PetStatusAvailable}
		}, "id", "name", "status")
	})

	t.Run("add pet with all fields", func(t *ldtest.T) {
		doAddPetTest(t, func() servicedef.Pet {
			return servicedef.Pet{
				ID:        10,
				Name:      "doggie",
				Category:  &servicedef.Category{ID: 1, Name: "Dogs"},
				PhotoURLs: []string{"string"},
				Tags:      []servicedef.Tag{{ID: 0, Name: "string"}},
				Status:    servicedef.PetStatusAvailable,
			}
		}, "id", "name", "category", "photoUrls", "tags", "status")
	})

	t.Run("get pet by id", func(t *ldtest.T) {
		fixture := NewPetFixture(t, servicedef.Pet{})
		client := NewPetStoreClient(t)

		var resp harness.Response
		t.Step("send get request", func() { resp = client.GetPet(t, fixture.ID()) })
		t.Step("check status", func() { RequireStatus(t, resp, http.StatusOK) })
		t.Step("check pet in response", func() {
			body := RequireJSONBody(t, resp)
			RequireSchema(t, body, schemas.Pet)
			assert.Equal(t, float64(fixture.ID()), body.GetByKey("id").Float64Value(), "pet id did not match")
		})
	})

	t.Run("update pet info", func(t *ldtest.T) {
		fixture := NewPetFixture(t, servicedef.Pet{})
		client := NewPetStoreClient(t)

		var update servicedef.Pet
		var resp harness.Response
		t.Step("prepare update", func() {
			update = servicedef.Pet{ID: fixture.ID(), Name: "Buddy Updated", Status: servicedef.PetStatusSold}
		})
		t.Step("send update request", func() { resp = client.UpdatePet(t, update) })
		t.Step("check status", func() { RequireStatus(t, resp, http.StatusOK) })
		t.Step("check pet in response", func() {
			AssertFieldsEchoed(t, JSONValueOf(t, update), RequireJSONBody(t, resp), "id", "name", "status")
		})
	})

	t.Run("delete pet by id", func(t *ldtest.T) {
		fixture := NewPetFixture(t, servicedef.Pet{})
		client := NewPetStoreClient(t)

		var resp, getResp harness.Response
		t.Step("send delete request", func() { resp = client.DeletePet(t, fixture.ID()) })
		t.Step("check delete response", func() {
			RequireStatus(t, resp, http.StatusOK)
			AssertBodyText(t, resp, servicedef.PetDeleted)
		})
		t.Step("send get request after delete", func() { getResp = client.GetPet(t, fixture.ID()) })
		t.Step("check that pet is gone", func() {
			RequireStatus(t, getResp, http.StatusNotFound)
			AssertBodyText(t, getResp, servicedef.PetNotFound)
		})
	})

	t.Run("delete same pet twice", func(t *ldtest.T) {
		fixture := NewPetFixture(t, servicedef.Pet{})
		client := NewPetStoreClient(t)

		for _, attempt := range []string{"first", "second"} {
			var resp harness.Response
			t.Step("send "+attempt+" delete request", func() { resp = client.DeletePet(t, fixture.ID()) })
			t.Step("check "+attempt+" delete response", func() {
				RequireStatus(t, resp, http.StatusOK)
				AssertBodyText(t, resp, servicedef.PetDeleted)
			})
		}
	})

	t.Run("get pets by status", doFindPetsByStatusTests)
}

func doAddPetTest(t *ldtest.T, makePet func() servicedef.Pet, echoedFields ...string) {
	client := NewPetStoreClient(t)

	var pet servicedef.Pet
	var resp harness.Response
	t.Step("prepare pet", func() { pet = makePet() })
	t.Step("send add request", func() { resp = client.AddPet(t, pet) })
	t.Step("check status and schema", func() {
		RequireStatus(t, resp, http.StatusOK)
		RequireSchema(t, RequireJSONBody(t, resp), schemas.Pet)
	})
	t.Step("check pet in response", func() {
		AssertFieldsEchoed(t, JSONValueOf(t, pet), RequireJSONBody(t, resp), echoedFields...)
	})
}

type findByStatusCase struct {
	status         string
	expectedStatus int
}

func doFindPetsByStatusTests(t *ldtest.T) {
	var cases []findByStatusCase
	for _, s := range servicedef.AllPetStatuses {
		cases = append(cases, findByStatusCase{s, http.StatusOK})
	}
	// Status values are case-sensitive, and anything outside the enum is rejected.
	cases = append(cases,
		findByStatusCase{"--", http.StatusBadRequest},
		findByStatusCase{"AVAILABLE", http.StatusBadRequest},
	)

	for _, c := range cases {
		t.Run(c.status, func(t *ldtest.T) {
			t.Parameter("status", c.status)
			t.Parameter("expected status code", c.expectedStatus)
			client := NewPetStoreClient(t)

			var resp harness.Response
			t.Step("send findByStatus request for "+c.status, func() { resp = client.FindPetsByStatus(t, c.status) })
			t.Step("check status and result format", func() {
				RequireStatus(t, resp, c.expectedStatus)
				if c.expectedStatus == http.StatusOK {
					body := RequireJSONBody(t, resp)
					AssertJSONArray(t, body)
					RequireSchema(t, body, schemas.PetList)
				} else {
					AssertReason(t, resp, "Bad Request")
				}
			})
		})
	}
}

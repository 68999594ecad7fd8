package petstoretests

import (
	"net/http"

	"github.com/petstore-qa/petstore-contract-tests/framework/harness"
	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"
	"github.com/petstore-qa/petstore-contract-tests/schemas"
	"github.com/petstore-qa/petstore-contract-tests/servicedef"
)

var orderFields = []string{"id", "petId", "quantity", "status", "complete"}

func DoStoreTests(t *ldtest.T) {
	t.Run("place order", func(t *ldtest.T) {
		client := NewPetStoreClient(t)

		var order servicedef.Order
		var resp harness.Response
		t.Step("prepare order", func() {
			order = servicedef.Order{ID: 1, PetID: 1, Quantity: 1, Status: servicedef.OrderStatusPlaced, Complete: true}
		})
		t.Step("send place order request", func() { resp = client.PlaceOrder(t, order) })
		t.Step("check status and schema", func() {
			RequireStatus(t, resp, http.StatusOK)
			RequireSchema(t, RequireJSONBody(t, resp), schemas.Order)
		})
		t.Step("check order in response", func() {
			AssertFieldsEchoed(t, JSONValueOf(t, order), RequireJSONBody(t, resp), orderFields...)
		})
	})

	t.Run("get order by id", func(t *ldtest.T) {
		fixture := NewOrderFixture(t, servicedef.Order{})
		client := NewPetStoreClient(t)

		var resp harness.Response
		t.Step("send get request", func() { resp = client.GetOrder(t, fixture.ID()) })
		t.Step("check status and schema", func() {
			RequireStatus(t, resp, http.StatusOK)
			RequireSchema(t, RequireJSONBody(t, resp), schemas.Order)
		})
		t.Step("check order in response", func() {
			AssertFieldsEchoed(t, JSONValueOf(t, fixture.Order), RequireJSONBody(t, resp), orderFields...)
		})
	})

	t.Run("delete order by id", func(t *ldtest.T) {
		fixture := NewOrderFixture(t, servicedef.Order{})
		client := NewPetStoreClient(t)

		var resp, getResp harness.Response
		t.Step("send delete request", func() { resp = client.DeleteOrder(t, fixture.ID()) })
		t.Step("check delete response", func() { RequireStatus(t, resp, http.StatusOK) })
		t.Step("send get request after delete", func() { getResp = client.GetOrder(t, fixture.ID()) })
		t.Step("check that order is gone", func() {
			RequireStatus(t, getResp, http.StatusNotFound)
			AssertBodyText(t, getResp, servicedef.OrderNotFound)
		})
	})

	t.Run("get nonexistent order", func(t *ldtest.T) {
		client := NewPetStoreClient(t)

		var resp harness.Response
		t.Step("send get request", func() { resp = client.GetOrder(t, nonexistentID) })
		t.Step("check status", func() { RequireStatus(t, resp, http.StatusNotFound) })
		t.Step("check body text", func() { AssertBodyText(t, resp, servicedef.OrderNotFound) })
	})

	t.Run("get inventory", func(t *ldtest.T) {
		client := NewPetStoreClient(t)

		var resp harness.Response
		t.Step("send inventory request", func() { resp = client.GetInventory(t) })
		t.Step("check status and schema", func() {
			RequireStatus(t, resp, http.StatusOK)
			RequireSchema(t, RequireJSONBody(t, resp), schemas.Inventory)
		})
	})
}

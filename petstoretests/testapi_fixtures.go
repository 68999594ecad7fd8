package petstoretests

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/petstore-qa/petstore-contract-tests/framework/harness"
	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"
	"github.com/petstore-qa/petstore-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture IDs are well above the range used by the service's seed data, and are different on
// every run so that leftovers from an interrupted run cannot collide with the current one.
var (
	resourceIDBase    = 1_000_000 + (time.Now().Unix()%1_000_000)*1000
	resourceIDCounter int64
)

func newResourceID() int64 {
	return resourceIDBase + atomic.AddInt64(&resourceIDCounter, 1)
}

// PetFixture is a pet that exists in the service for the duration of one test. Pet holds the
// pet as the service returned it when it was created.
type PetFixture struct {
	Pet    servicedef.Pet
	entity *harness.Entity
}

// OrderFixture is an order that exists in the service for the duration of one test.
type OrderFixture struct {
	Order  servicedef.Order
	entity *harness.Entity
}

// NewPetFixture creates a pet before the test body runs, and schedules its deletion for the end
// of the test whether or not the test passes. Fields of pet that are zero are filled in with
// defaults, including a newly allocated ID.
//
// If the pet cannot be created, the test fails and immediately exits.
func NewPetFixture(t *ldtest.T, pet servicedef.Pet) *PetFixture {
	if pet.ID == 0 {
		pet.ID = newResourceID()
	}
	if pet.Name == "" {
		pet.Name = "Buddy"
	}
	if pet.Status == "" {
		pet.Status = servicedef.PetStatusAvailable
	}
	f := &PetFixture{}
	f.entity = createEntity(t, "pet", servicedef.PetPath, servicedef.PetPath, pet, &f.Pet)
	return f
}

// NewOrderFixture is the same as NewPetFixture, but for a store order.
func NewOrderFixture(t *ldtest.T, order servicedef.Order) *OrderFixture {
	if order.ID == 0 {
		order.ID = newResourceID()
	}
	if order.PetID == 0 {
		order.PetID = 1
	}
	if order.Quantity == 0 {
		order.Quantity = 1
	}
	if order.Status == "" {
		order.Status = servicedef.OrderStatusPlaced
		order.Complete = true
	}
	f := &OrderFixture{}
	f.entity = createEntity(t, "order", servicedef.StoreOrderPath, servicedef.StoreOrderPath, order, &f.Order)
	return f
}

// createEntity creates the resource and schedules its deletion. The resource as the service
// returned it is decoded into created, since the service may not store exactly what was sent.
func createEntity(
	t *ldtest.T,
	description, createPath, resourcePathPrefix string,
	params interface{},
	created interface{},
) *harness.Entity {
	var entity *harness.Entity
	t.Step("create "+description+" fixture", func() {
		client := requireContext(t).client.WithLogger(t.DebugLogger())
		e, err := client.CreateEntity(description, createPath, resourcePathPrefix, params)
		require.NoError(t, err, "fixture setup failed")
		t.Defer(func() {
			assert.NoError(t, e.Close(), "fixture teardown failed")
		})
		t.Debug("Fixture %s is at %s", description, e.Path())
		require.NoError(t, json.Unmarshal([]byte(e.Created().JSONString()), created),
			"fixture setup failed: could not decode created %s", description)
		entity = e
	})
	return entity
}

// ID returns the identifier that the service gave the pet, which is also the one that will be
// deleted at the end of the test.
func (f *PetFixture) ID() int64 { return entityID(f.entity) }

// ID returns the identifier that the service gave the order.
func (f *OrderFixture) ID() int64 { return entityID(f.entity) }

func entityID(e *harness.Entity) int64 {
	return int64(e.ID().Float64Value())
}

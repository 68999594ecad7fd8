// Package servicedef contains the wire representations of Pet Store API resources, and the
// literal values that the API is expected to return.
package servicedef

import "fmt"

const (
	PetPath              = "/pet"
	PetFindByStatusPath  = "/pet/findByStatus"
	StoreOrderPath       = "/store/order"
	StoreInventoryPath   = "/store/inventory"
	DefaultServiceURL    = "http://5.181.109.28:9090/api/v3"
	FindByStatusQueryKey = "status"
)

// Response texts that the API returns as plain-text bodies.
const (
	PetNotFound   = "Pet not found"
	PetDeleted    = "Pet deleted"
	OrderNotFound = "Order not found"
)

const (
	PetStatusAvailable = "available"
	PetStatusPending   = "pending"
	PetStatusSold      = "sold"

	OrderStatusPlaced    = "placed"
	OrderStatusApproved  = "approved"
	OrderStatusDelivered = "delivered"
)

// AllPetStatuses is the complete set of values accepted by findByStatus.
var AllPetStatuses = []string{PetStatusAvailable, PetStatusPending, PetStatusSold}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Pet struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  *Category `json:"category,omitempty"`
	PhotoURLs []string  `json:"photoUrls,omitempty"`
	Tags      []Tag     `json:"tags,omitempty"`
	Status    string    `json:"status,omitempty"`
}

type Order struct {
	ID       int64  `json:"id"`
	PetID    int64  `json:"petId"`
	Quantity int    `json:"quantity"`
	ShipDate string `json:"shipDate,omitempty"`
	Status   string `json:"status,omitempty"`
	Complete bool   `json:"complete"`
}

// PetResourcePath returns the path of a single pet.
func PetResourcePath(id int64) string {
	return fmt.Sprintf("%s/%d", PetPath, id)
}

// OrderResourcePath returns the path of a single order.
func OrderResourcePath(id int64) string {
	return fmt.Sprintf("%s/%d", StoreOrderPath, id)
}

package petstoretests

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/petstore-qa/petstore-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const fakeBasePath = "/api/v3"

// fakePetStore is an in-memory imitation of the Pet Store API, including its quirks, so that
// the contract tests can be run without the remote service.
type fakePetStore struct {
	pets    map[int64]ldvalue.Value
	orders  map[int64]ldvalue.Value
	created []string
	deleted []string
	lock    sync.Mutex

	// deviations from the real service, for checking that the tests notice them
	strictPetDelete bool
	brokenPetGet    bool
	brokenOrderPost bool
	assignIDs       bool
	lastAssignedID  int64
}

func newFakePetStore() *fakePetStore {
	return &fakePetStore{
		pets:   make(map[int64]ldvalue.Value),
		orders: make(map[int64]ldvalue.Value),
	}
}

func (s *fakePetStore) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pet", s.addPet)
	mux.HandleFunc("PUT /pet", s.updatePet)
	mux.HandleFunc("GET /pet/findByStatus", s.findPetsByStatus)
	mux.HandleFunc("GET /pet/{id}", s.getPet)
	mux.HandleFunc("DELETE /pet/{id}", s.deletePet)
	mux.HandleFunc("POST /store/order", s.placeOrder)
	mux.HandleFunc("GET /store/order/{id}", s.getOrder)
	mux.HandleFunc("DELETE /store/order/{id}", s.deleteOrder)
	mux.HandleFunc("GET /store/inventory", s.getInventory)
	return http.StripPrefix(fakeBasePath, mux)
}

func (s *fakePetStore) petIDs() []int64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return keysOf(s.pets)
}

func (s *fakePetStore) orderIDs() []int64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return keysOf(s.orders)
}

func (s *fakePetStore) addPet(w http.ResponseWriter, r *http.Request) {
	pet, id, ok := readResource(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	pet, id = s.maybeAssignID(pet, id)
	s.pets[id] = pet
	s.created = append(s.created, servicedef.PetResourcePath(id))
	s.lock.Unlock()
	writeJSON(w, pet)
}

func (s *fakePetStore) updatePet(w http.ResponseWriter, r *http.Request) {
	pet, id, ok := readResource(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	_, exists := s.pets[id]
	if exists {
		s.pets[id] = pet
	}
	s.lock.Unlock()
	if !exists {
		writeText(w, http.StatusNotFound, servicedef.PetNotFound)
		return
	}
	writeJSON(w, pet)
}

func (s *fakePetStore) getPet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if s.brokenPetGet {
		writeText(w, http.StatusInternalServerError, "database unavailable")
		return
	}
	s.lock.Lock()
	pet, exists := s.pets[id]
	s.lock.Unlock()
	if !exists {
		writeText(w, http.StatusNotFound, servicedef.PetNotFound)
		return
	}
	writeJSON(w, pet)
}

func (s *fakePetStore) deletePet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	_, exists := s.pets[id]
	delete(s.pets, id)
	s.deleted = append(s.deleted, servicedef.PetResourcePath(id))
	s.lock.Unlock()
	if !exists && s.strictPetDelete {
		writeText(w, http.StatusNotFound, servicedef.PetNotFound)
		return
	}
	writeText(w, http.StatusOK, servicedef.PetDeleted)
}

func (s *fakePetStore) findPetsByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get(servicedef.FindByStatusQueryKey)
	if !isPetStatus(status) {
		http.Error(w, "Input error: query parameter `status value `"+status+"` is not in the allowable values",
			http.StatusBadRequest)
		return
	}
	s.lock.Lock()
	list := ldvalue.ArrayBuild()
	for _, id := range keysOf(s.pets) {
		if pet := s.pets[id]; pet.GetByKey("status").StringValue() == status {
			list.Add(pet)
		}
	}
	s.lock.Unlock()
	writeJSON(w, list.Build())
}

func (s *fakePetStore) placeOrder(w http.ResponseWriter, r *http.Request) {
	if s.brokenOrderPost {
		writeText(w, http.StatusInternalServerError, "database unavailable")
		return
	}
	order, id, ok := readResource(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	order, id = s.maybeAssignID(order, id)
	s.orders[id] = order
	s.created = append(s.created, servicedef.OrderResourcePath(id))
	s.lock.Unlock()
	writeJSON(w, order)
}

func (s *fakePetStore) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	order, exists := s.orders[id]
	s.lock.Unlock()
	if !exists {
		writeText(w, http.StatusNotFound, servicedef.OrderNotFound)
		return
	}
	writeJSON(w, order)
}

func (s *fakePetStore) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	delete(s.orders, id)
	s.deleted = append(s.deleted, servicedef.OrderResourcePath(id))
	s.lock.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *fakePetStore) getInventory(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]int)
	s.lock.Lock()
	for _, pet := range s.pets {
		counts[pet.GetByKey("status").StringValue()]++
	}
	s.lock.Unlock()
	data, _ := json.Marshal(counts)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// maybeAssignID replaces the requested ID with one chosen by the store, if assignIDs is set.
// The caller must hold the lock.
func (s *fakePetStore) maybeAssignID(resource ldvalue.Value, id int64) (ldvalue.Value, int64) {
	if !s.assignIDs {
		return resource, id
	}
	s.lastAssignedID++
	id = 700 + s.lastAssignedID
	props := resource.AsArbitraryValue().(map[string]interface{})
	props["id"] = float64(id)
	return ldvalue.CopyArbitraryValue(props), id
}

func readResource(w http.ResponseWriter, r *http.Request) (ldvalue.Value, int64, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error())
		return ldvalue.Null(), 0, false
	}
	var value ldvalue.Value
	if err := json.Unmarshal(body, &value); err != nil || value.Type() != ldvalue.ObjectType {
		writeText(w, http.StatusBadRequest, "Invalid body")
		return ldvalue.Null(), 0, false
	}
	return value, int64(value.GetByKey("id").Float64Value()), true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Invalid ID supplied")
		return 0, false
	}
	return id, true
}

func isPetStatus(status string) bool {
	for _, s := range servicedef.AllPetStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, value ldvalue.Value) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(value.JSONString()))
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func keysOf(m map[int64]ldvalue.Value) []int64 {
	ret := make([]int64, 0, len(m))
	for id := range m {
		ret = append(ret, id)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

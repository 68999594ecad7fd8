package petstoretests

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/petstore-qa/petstore-contract-tests/framework/harness"
	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"
	"github.com/petstore-qa/petstore-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAgainstFake(t *testing.T, store *fakePetStore, filter ldtest.Filter) ldtest.Results {
	var results ldtest.Results
	httphelpers.WithServer(store.handler(), func(server *httptest.Server) {
		client := harness.NewServiceClient(server.URL+fakeBasePath, nil, nil)
		results = RunTestSuite(client, filter, nil)
	})
	return results
}

func failedTestNames(results ldtest.Results) []string {
	var ret []string
	for _, f := range results.Failures {
		ret = append(ret, f.TestID.String())
	}
	return ret
}

func requireFixturesCleanedUp(t *testing.T, store *fakePetStore) {
	for _, id := range store.petIDs() {
		assert.Less(t, id, resourceIDBase, "pet fixture %d was not deleted", id)
	}
	for _, id := range store.orderIDs() {
		assert.Less(t, id, resourceIDBase, "order fixture %d was not deleted", id)
	}
	store.lock.Lock()
	defer store.lock.Unlock()
	for _, path := range store.created {
		if strings.HasSuffix(path, "/1") || strings.HasSuffix(path, "/10") {
			continue
		}
		assert.Contains(t, store.deleted, path)
	}
}

func TestAllTestsPassAgainstConformingService(t *testing.T) {
	store := newFakePetStore()
	results := runAgainstFake(t, store, nil)

	require.True(t, results.OK(), "unexpected failures: %v", failedTestNames(results))
	assert.Len(t, results.Leaves(), 19)

	var features []string
	for _, r := range results.Tests {
		if len(r.TestID.Path) == 1 {
			features = append(features, r.TestID.Feature())
		}
	}
	assert.Equal(t, []string{FeaturePet, FeatureStore}, features)

	requireFixturesCleanedUp(t, store)
}

func TestEveryTestRecordsSteps(t *testing.T) {
	results := runAgainstFake(t, newFakePetStore(), nil)
	for _, r := range results.Leaves() {
		var names []string
		for _, s := range r.Steps {
			names = append(names, s.Name)
			assert.Equal(t, ldtest.StepPassed, s.Status, "step %q of %s", s.Name, r.TestID)
		}
		require.NotEmpty(t, names, "test %s had no steps", r.TestID)
		sent := false
		for _, name := range names {
			if strings.HasPrefix(name, "send ") {
				sent = true
			}
		}
		assert.True(t, sent, "test %s had no step for sending its request: %v", r.TestID, names)
	}
}

func TestRequestAndFixtureStepNames(t *testing.T) {
	results := runAgainstFake(t, newFakePetStore(), nil)
	steps := make(map[string][]string)
	for _, r := range results.Leaves() {
		for _, s := range r.Steps {
			steps[r.TestID.String()] = append(steps[r.TestID.String()], s.Name)
		}
	}
	assert.Equal(t, []string{
		"create pet fixture",
		"send delete request",
		"check delete response",
		"send get request after delete",
		"check that pet is gone",
	}, steps["Pet/delete pet by id"])
	assert.Equal(t, []string{
		"prepare pet",
		"send add request",
		"check status and schema",
		"check pet in response",
	}, steps["Pet/add pet with all fields"])
	assert.Equal(t, []string{
		"create order fixture",
		"send delete request",
		"check delete response",
		"send get request after delete",
		"check that order is gone",
	}, steps["Store/delete order by id"])
}

func TestFindByStatusCasesAreParameterized(t *testing.T) {
	filter := ldtest.RegexFilters{}
	require.NoError(t, filter.MustMatch.Set("Pet/get pets by status"))
	results := runAgainstFake(t, newFakePetStore(), filter.AsFilter)

	leaves := results.Leaves()
	require.Len(t, leaves, 5)
	for _, r := range leaves {
		require.Len(t, r.Parameters, 2)
		assert.Equal(t, "status", r.Parameters[0].Name)
		assert.Equal(t, r.TestID.Title(), r.Parameters[0].Value)
		if r.TestID.Title() == "--" || r.TestID.Title() == "AVAILABLE" {
			assert.Equal(t, "400", r.Parameters[1].Value)
		} else {
			assert.Equal(t, "200", r.Parameters[1].Value)
		}
	}
}

func TestStrictDeleteIsReportedAsContractViolation(t *testing.T) {
	store := newFakePetStore()
	store.strictPetDelete = true
	results := runAgainstFake(t, store, nil)

	assert.Equal(t, []string{"Pet/delete nonexistent pet", "Pet/delete same pet twice"}, failedTestNames(results))
	requireFixturesCleanedUp(t, store)
}

func TestFixturesAreDeletedWhenTestsFail(t *testing.T) {
	store := newFakePetStore()
	store.brokenPetGet = true
	results := runAgainstFake(t, store, nil)

	assert.Equal(t, []string{
		"Pet/get nonexistent pet",
		"Pet/get pet by id",
		"Pet/delete pet by id",
	}, failedTestNames(results))
	requireFixturesCleanedUp(t, store)

	for _, f := range results.Failures {
		if f.TestID.Title() == "get pet by id" {
			require.Len(t, f.Steps, 3)
			assert.Equal(t, ldtest.StepPassed, f.Steps[0].Status)
			assert.Equal(t, ldtest.StepPassed, f.Steps[1].Status)
			assert.Equal(t, "check status", f.Steps[2].Name)
			assert.Equal(t, ldtest.StepFailed, f.Steps[2].Status)
		}
	}
}

func TestFixtureSetupFailureFailsDependentTests(t *testing.T) {
	store := newFakePetStore()
	store.brokenOrderPost = true
	results := runAgainstFake(t, store, nil)

	assert.Equal(t, []string{
		"Store/place order",
		"Store/get order by id",
		"Store/delete order by id",
	}, failedTestNames(results))

	for _, f := range results.Failures {
		if f.TestID.Title() == "place order" {
			continue
		}
		require.NotEmpty(t, f.Errors)
		assert.Contains(t, f.Errors[0].Error(), "fixture setup failed")
		require.Len(t, f.Steps, 1, "test body should not have run")
		assert.Equal(t, "create order fixture", f.Steps[0].Name)
		assert.Equal(t, ldtest.StepFailed, f.Steps[0].Status)
	}
	store.lock.Lock()
	defer store.lock.Unlock()
	for _, path := range store.deleted {
		assert.False(t, strings.HasPrefix(path, servicedef.StoreOrderPath+"/"),
			"should not have tried to delete an order that was never created: %s", path)
	}
}

func TestUnreachableServiceFailsEveryTest(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	closedURL := server.URL
	server.Close()

	client := harness.NewServiceClient(closedURL+fakeBasePath, nil, nil)
	results := RunTestSuite(client, nil, nil)

	assert.Len(t, results.Failures, len(results.Leaves()))
	for _, f := range results.Failures {
		require.NotEmpty(t, f.Errors)
		msg := f.Errors[0].Error()
		assert.True(t, strings.Contains(msg, "request could not be sent") || strings.Contains(msg, "fixture setup failed"),
			"unexpected error for %s: %s", f.TestID, msg)
		if assert.NotEmpty(t, f.Steps, "failure of %s should be attributed to a step", f.TestID) {
			assert.Equal(t, ldtest.StepFailed, f.Steps[len(f.Steps)-1].Status)
		}
	}
}

func TestFixturesUseIDsAssignedByService(t *testing.T) {
	store := newFakePetStore()
	store.assignIDs = true
	filter := ldtest.RegexFilters{}
	require.NoError(t, filter.MustMatch.Set("^Pet/get pet by id$"))
	require.NoError(t, filter.MustMatch.Set("^Pet/update pet info$"))
	require.NoError(t, filter.MustMatch.Set("^Store/get order by id$"))
	results := runAgainstFake(t, store, filter.AsFilter)

	require.True(t, results.OK(), "unexpected failures: %v", failedTestNames(results))
	assert.Len(t, results.Leaves(), 3)
	assert.Empty(t, store.petIDs())
	assert.Empty(t, store.orderIDs())

	store.lock.Lock()
	defer store.lock.Unlock()
	assert.Equal(t, []string{"/pet/701", "/pet/702", "/store/order/703"}, store.created)
	for _, path := range store.created {
		assert.Contains(t, store.deleted, path)
	}
}

package petstoretests

import (
	"encoding/json"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/petstore-qa/petstore-contract-tests/framework/harness"
	"github.com/petstore-qa/petstore-contract-tests/framework/ldtest"
	"github.com/petstore-qa/petstore-contract-tests/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// RequireStatus fails the test and immediately exits if the response status is not expected.
// Nothing else about a response is worth checking if the status is wrong.
func RequireStatus(t *ldtest.T, resp harness.Response, expected int) {
	require.Equal(t, expected, resp.StatusCode, "response status code did not match (body: %s)", resp.Text())
}

// AssertBodyText checks the exact text of a plain-text response body.
func AssertBodyText(t *ldtest.T, resp harness.Response, expected string) {
	assert.Equal(t, expected, resp.Text(), "response body text did not match")
}

// AssertReason checks the reason phrase of the response status line.
func AssertReason(t *ldtest.T, resp harness.Response, expected string) {
	assert.Equal(t, expected, resp.Reason, "response reason phrase did not match")
}

// RequireJSONBody parses the response body as JSON, failing the test and immediately exiting
// if it is not valid JSON.
func RequireJSONBody(t *ldtest.T, resp harness.Response) ldvalue.Value {
	value, err := resp.JSON()
	require.NoError(t, err)
	return value
}

// RequireSchema fails the test and immediately exits if the document does not conform to the
// schema. Schema violations are reported separately from field-level mismatches.
func RequireSchema(t *ldtest.T, document ldvalue.Value, schema *openapi3.Schema) {
	err := schemas.Validate(document, schema)
	if err != nil {
		t.Debug("Document that failed schema validation: %s", document.JSONString())
	}
	require.NoError(t, err, "schema validation failed")
}

// AssertFieldsEchoed checks that each of the named properties has the same value in actual as
// in expected. Nested objects are compared by content, so property order does not matter.
func AssertFieldsEchoed(t *ldtest.T, expected, actual ldvalue.Value, fields ...string) {
	for _, field := range fields {
		e, a := expected.GetByKey(field), actual.GetByKey(field)
		assert.True(t, e.Equal(a), "property %q in response did not match\nexpected: %s\nactual: %s",
			field, e.JSONString(), a.JSONString())
	}
}

// AssertJSONArray checks that the value is a JSON array.
func AssertJSONArray(t *ldtest.T, value ldvalue.Value) {
	assert.Equal(t, ldvalue.ArrayType, value.Type(), "response body should have been a JSON array")
}

// JSONValueOf converts a payload into the same representation as a parsed response, so that
// the two can be compared.
func JSONValueOf(t *ldtest.T, payload interface{}) ldvalue.Value {
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	var value ldvalue.Value
	require.NoError(t, json.Unmarshal(data, &value))
	return value
}

package harness

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/petstore-qa/petstore-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Entity represents a resource that we have asked the service to create, and that we are
// responsible for deleting again. The resource is assumed to exist in the service until Close
// is called.
type Entity struct {
	client      *ServiceClient
	description string
	id          ldvalue.Value
	resourceURL string
	created     ldvalue.Value
	logger      framework.Logger
	closeOnce   sync.Once
	closeErr    error
}

// FixtureError means that a resource could not be created, or could not be deleted again.
type FixtureError struct {
	Description string
	Action      string
	Response    Response
	Err         error
}

func (e *FixtureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not %s %s: %s", e.Action, e.Description, e.Err)
	}
	return fmt.Sprintf("could not %s %s: service returned HTTP %d: %s",
		e.Action, e.Description, e.Response.StatusCode, truncate(e.Response.Text(), 200))
}

func (e *FixtureError) Unwrap() error {
	return e.Err
}

// CreateEntity tells the service to create a resource by POSTing params to createPath. The
// response must be a 2xx status with a JSON object that has an "id" property; the resource can
// then be deleted with a DELETE request to resourcePathPrefix + "/" + id.
//
// The format of params is defined by the caller; this method simply marshals it to JSON.
func (c *ServiceClient) CreateEntity(
	description string,
	createPath string,
	resourcePathPrefix string,
	params interface{},
) (*Entity, error) {
	c.logger.Printf("Creating %s", description)
	resp, err := c.Post(createPath, params)
	if err != nil {
		return nil, &FixtureError{Description: description, Action: "create", Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &FixtureError{Description: description, Action: "create", Response: resp}
	}
	created, err := resp.JSON()
	if err != nil {
		return nil, &FixtureError{Description: description, Action: "create", Response: resp, Err: err}
	}
	id := created.GetByKey("id")
	if id.IsNull() {
		return nil, &FixtureError{Description: description, Action: "create", Response: resp,
			Err: fmt.Errorf("service did not return an id for the new resource")}
	}

	e := &Entity{
		client:      c,
		description: description,
		id:          id,
		resourceURL: strings.TrimSuffix(resourcePathPrefix, "/") + "/" + idPathElement(id),
		created:     created,
		logger:      c.logger,
	}
	c.logger.Printf("Created %s with id %s", description, id.JSONString())
	return e, nil
}

// ID returns the identifier that the service assigned to the resource.
func (e *Entity) ID() ldvalue.Value {
	return e.id
}

// Created returns the JSON representation of the resource that the service returned when it
// was created.
func (e *Entity) Created() ldvalue.Value {
	return e.created
}

// Path returns the path of the resource relative to the service base URL.
func (e *Entity) Path() string {
	return e.resourceURL
}

// Close tells the service to delete the resource. The DELETE request is sent only once no
// matter how many times Close is called; later calls return the result of the first one.
//
// A 404 status is not an error, since a test may already have deleted the resource itself.
func (e *Entity) Close() error {
	e.closeOnce.Do(func() {
		e.logger.Printf("Deleting %s with id %s", e.description, e.id.JSONString())
		resp, err := e.client.Delete(e.resourceURL)
		if err != nil {
			e.closeErr = &FixtureError{Description: e.description, Action: "delete", Err: err}
			return
		}
		if !resp.IsSuccess() && resp.StatusCode != http.StatusNotFound {
			e.closeErr = &FixtureError{Description: e.description, Action: "delete", Response: resp}
		}
	})
	return e.closeErr
}

func idPathElement(id ldvalue.Value) string {
	if id.Type() == ldvalue.StringType {
		return id.StringValue()
	}
	return id.JSONString()
}

// Package executor resolves operation requests against the catalog.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/grovetools/catalogd/errors"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/grovetools/catalogd/schema"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

// ContentTypeJSON is the content type of every executor response.
const ContentTypeJSON = "application/json"

// Catalog is the storage the executor reads from and appends to.
type Catalog interface {
	List() []models.Cat
	Add(cat models.Cat)
}

type handlerFunc func(ctx context.Context, req models.OperationRequest) (interface{}, error)

// Executor decodes operation bodies, dispatches them by name and encodes the
// outcome. Every failure becomes a well-formed error response.
type Executor struct {
	catalog   Catalog
	validator *schema.Validator
	logger    *logrus.Entry
	handlers  map[string]handlerFunc
}

// New creates an Executor over the given catalog.
func New(catalog Catalog, logger *logrus.Entry) (*Executor, error) {
	validator, err := schema.NewRequestValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to build request validator")
	}

	e := &Executor{
		catalog:   catalog,
		validator: validator,
		logger:    logger,
	}
	e.handlers = map[string]handlerFunc{
		models.OperationListCats: e.listCats,
		models.OperationAddCat:   e.addCat,
	}
	return e, nil
}

// Execute runs the decode, dispatch and encode pipeline for one request body.
func (e *Executor) Execute(ctx context.Context, body []byte) (resp models.Response) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("panic", r).Error("Operation handler panicked")
			resp = ErrorResponse(errors.New(errors.ErrCodeInternal, fmt.Sprintf("internal error: %v", r)))
		}
	}()

	req, err := e.Decode(body)
	if err != nil {
		e.logger.WithError(err).Debug("Rejected malformed request")
		return ErrorResponse(err)
	}

	log := e.logger.WithField("operation", req.OperationName)

	handler, ok := e.handlers[req.OperationName]
	if !ok {
		err := errors.UnknownOperation(req.OperationName)
		log.Debug("Rejected unknown operation")
		return ErrorResponse(err)
	}

	result, err := handler(ctx, req)
	if err != nil {
		log.WithError(err).Debug("Operation failed")
		return ErrorResponse(err)
	}

	data, err := json.Marshal(map[string]map[string]interface{}{
		"data": {req.OperationName: result},
	})
	if err != nil {
		return ErrorResponse(errors.Wrap(err, errors.ErrCodeInternal, "failed to encode result"))
	}

	log.Debug("Operation executed")
	return models.Response{
		StatusCode:  http.StatusOK,
		ContentType: ContentTypeJSON,
		Body:        string(data),
	}
}

// Decode parses and validates a request body into an OperationRequest.
func (e *Executor) Decode(body []byte) (models.OperationRequest, error) {
	var req models.OperationRequest

	if len(bytes.TrimSpace(body)) == 0 {
		return req, errors.MalformedRequest("request body is empty")
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return req, errors.MalformedRequestf(err, "body is not valid JSON")
	}

	// A null arguments map reads as no arguments
	if obj, ok := doc.(map[string]interface{}); ok {
		if args, present := obj["arguments"]; present && args == nil {
			delete(obj, "arguments")
		}
	}

	if err := e.validator.Validate(doc); err != nil {
		return req, errors.MalformedRequestf(err, "body does not match the operation schema")
	}

	if err := decode(doc, &req); err != nil {
		return req, errors.MalformedRequestf(err, "failed to decode operation")
	}
	return req, nil
}

func (e *Executor) listCats(_ context.Context, _ models.OperationRequest) (interface{}, error) {
	return e.catalog.List(), nil
}

func (e *Executor) addCat(_ context.Context, req models.OperationRequest) (interface{}, error) {
	raw, ok := req.Arguments["cat"]
	if !ok {
		return nil, errors.MalformedRequest(fmt.Sprintf("%s requires arguments.cat", models.OperationAddCat))
	}

	var cat models.Cat
	if err := decode(raw, &cat); err != nil {
		return nil, errors.MalformedRequestf(err, "arguments.cat is not a valid entry")
	}
	if cat.Nicknames == nil {
		cat.Nicknames = []string{}
	}
	if !cat.Colour.Valid() {
		return nil, errors.MalformedRequest(fmt.Sprintf("unknown colour %q", cat.Colour)).
			WithDetail("colour", string(cat.Colour))
	}

	e.catalog.Add(cat)
	return struct{}{}, nil
}

// decode maps a generic JSON value onto target using its json tags.
func decode(input interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	return decoder.Decode(input)
}

// ErrorResponse encodes err as a JSON error body with the matching status.
func ErrorResponse(err error) models.Response {
	data, _ := json.Marshal(models.ErrorResponse{Error: errorMessage(err)})
	return models.Response{
		StatusCode:  errors.HTTPStatus(err),
		ContentType: ContentTypeJSON,
		Body:        string(data),
	}
}

// errorMessage renders the client-facing message: the structured message
// plus the underlying cause when there is one.
func errorMessage(err error) string {
	catErr, ok := err.(*errors.CatalogError)
	if !ok {
		return err.Error()
	}
	if catErr.Cause != nil {
		return fmt.Sprintf("%s: %v", catErr.Message, catErr.Cause)
	}
	return catErr.Message
}

package models

// Operation names served by the catalog endpoint.
const (
	OperationListCats = "listCats"
	OperationAddCat   = "addCat"
)

// OperationRequest is the decoded body of a POST to the operation endpoint.
type OperationRequest struct {
	OperationName string                 `json:"operationName" jsonschema:"required,minLength=1,description=Name of the query or mutation to run"`
	Arguments     map[string]interface{} `json:"arguments,omitempty" jsonschema:"description=Operation arguments keyed by name"`
}

// Request is a transport-neutral inbound request handed to the router.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Response is what the router hands back to the transport.
type Response struct {
	StatusCode  int
	ContentType string
	Body        string
}

// ErrorResponse is the body returned for any rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CatAddedEvent is pushed to subscription clients for every appended entry.
type CatAddedEvent struct {
	Data struct {
		CatAdded Cat `json:"catAdded"`
	} `json:"data"`
}

package server

import (
	"context"
	"io"
	"net/http"

	"github.com/grovetools/catalogd/errors"
	"github.com/grovetools/catalogd/internal/catalogd/executor"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/grovetools/catalogd/schema"
	"github.com/sirupsen/logrus"
)

const (
	// SchemaPath serves the rendered schema text.
	SchemaPath = "/schema"
	// GraphQLPath executes operation requests.
	GraphQLPath = "/graphql"

	contentTypeText = "text/plain; charset=utf-8"
)

var notFoundBody = `{"error":"not found"}`

// Router dispatches requests by exact method and path.
type Router struct {
	executor     *executor.Executor
	logger       *logrus.Entry
	maxBodyBytes int64
}

// NewRouter creates a Router over exec. Bodies larger than maxBodyBytes are
// rejected as malformed.
func NewRouter(exec *executor.Executor, maxBodyBytes int64, logger *logrus.Entry) *Router {
	return &Router{
		executor:     exec,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// Route maps a request onto the schema renderer, the executor or a not found
// response.
func (rt *Router) Route(ctx context.Context, req models.Request) models.Response {
	switch {
	case req.Method == http.MethodGet && req.Path == SchemaPath:
		return models.Response{
			StatusCode:  http.StatusOK,
			ContentType: contentTypeText,
			Body:        schema.Render(),
		}
	case consumesBody(req.Method, req.Path):
		return rt.executor.Execute(ctx, req.Body)
	default:
		return models.Response{
			StatusCode:  http.StatusNotFound,
			ContentType: executor.ContentTypeJSON,
			Body:        notFoundBody,
		}
	}
}

// ServeHTTP adapts net/http to Route. Only POST /graphql consumes a body, so
// the size limit applies there alone.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if consumesBody(r.Method, r.URL.Path) && r.Body != nil {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, rt.maxBodyBytes))
		if err != nil {
			rt.logger.WithError(err).Debug("Failed to read request body")
			writeResponse(w, executor.ErrorResponse(errors.MalformedRequestf(err, "failed to read request body")))
			return
		}
		body = data
	}

	resp := rt.Route(r.Context(), models.Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   body,
	})
	writeResponse(w, resp)
}

func consumesBody(method, path string) bool {
	return method == http.MethodPost && path == GraphQLPath
}

func writeResponse(w http.ResponseWriter, resp models.Response) {
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.StatusCode)
	io.WriteString(w, resp.Body)
}

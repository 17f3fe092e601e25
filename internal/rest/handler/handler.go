// Package handler implements the REST endpoints for the marketplace.
package handler

import (
	"errors"
	"io"
	"net/http"

	restTypes "github.com/belgahub/hub/internal/rest/types"
	"github.com/bytedance/sonic"
	"github.com/uptrace/bunrouter"
)

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads and unmarshals a request body.
func decodeJSON(req bunrouter.Request, v any) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}

	if len(body) == 0 {
		return errEmptyBody
	}

	return sonic.Unmarshal(body, v)
}

// writeError sends the uniform JSON error payload.
func writeError(w http.ResponseWriter, status int, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := sonic.Marshal(restTypes.ErrorResponse{Error: message})
	if err != nil {
		return err
	}

	_, err = w.Write(payload)

	return err
}

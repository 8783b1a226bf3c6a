package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

type response struct {
	Code  int    `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func writeResponse(ctx context.Context, data any) error {
	return writeJSON(xcontext.HTTPWriter(ctx), response{Code: 0, Data: data})
}

func writeError(ctx context.Context, err error) {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	resp := response{Code: int(errx.Code), Error: errx.Message}
	if err := writeJSON(xcontext.HTTPWriter(ctx), resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}

func methodNotAllowedError(method string) error {
	return errorx.New(errorx.BadRequest, "Method %s is not allowed", method)
}

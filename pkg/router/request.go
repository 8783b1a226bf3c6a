package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sosyal-lab/backend/pkg/errorx"
	"github.com/sosyal-lab/backend/pkg/xcontext"
)

// parseRequest binds the incoming request to a Request value. GET requests
// bind query parameters by json tag; POST requests decode a JSON body unless
// the content type is multipart, in which case the handler reads the form
// itself.
func parseRequest[Request any](ctx context.Context, method string) (*Request, error) {
	req := new(Request)
	httpReq := xcontext.HTTPRequest(ctx)

	switch method {
	case http.MethodGet:
		query := map[string]string{}
		for key, values := range httpReq.URL.Query() {
			if len(values) > 0 {
				query[key] = values[0]
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           req,
		})
		if err != nil {
			return nil, err
		}

		if err := decoder.Decode(query); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind query: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid query parameters")
		}

	case http.MethodPost:
		contentType := httpReq.Header.Get("Content-Type")
		if strings.HasPrefix(contentType, "multipart/form-data") {
			return req, nil
		}

		body, err := io.ReadAll(httpReq.Body)
		if err != nil {
			return nil, err
		}

		if len(body) > 0 {
			if err := json.Unmarshal(body, req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot unmarshal body: %v", err)
				return nil, errorx.New(errorx.BadRequest, "Invalid request body")
			}
		}
	}

	return req, nil
}

package test_utils

import (
	"net/http"

	"gopkg.in/h2non/gock.v1"
)

// MockJSONResponse registers a gock expectation that answers method+url with the given status and JSON body.
// The caller is responsible for calling gock.Off, typically via t.Cleanup.
func MockJSONResponse(method, baseUrl, path string, status int, body interface{}) *gock.Response {
	req := gock.New(baseUrl)
	switch method {
	case http.MethodGet:
		req = req.Get(path)
	case http.MethodPost:
		req = req.Post(path)
	default:
		req = req.Get(path)
	}

	return req.Reply(status).JSON(body)
}

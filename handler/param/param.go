package param

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding decode query parameters of GET requests, json body otherwise
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		return decoder.Decode(v, r.URL.Query())
	}

	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}

	return json.NewDecoder(r.Body).Decode(v)
}

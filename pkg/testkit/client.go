package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Response is a recorded reply with the standard envelope already decoded.
type Response struct {
	Code    int                 `json:"-"`
	Header  http.Header         `json:"-"`
	Raw     []byte              `json:"-"`
	Status  int                 `json:"status"`
	ErrCode string              `json:"code"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// Decode unmarshals the envelope's data into dest.
func (r *Response) Decode(t *testing.T, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, dest), string(r.Raw))
}

// Client drives an http.Handler in-process.
type Client struct {
	Handler http.Handler
	Token   string
}

// JSON sends body encoded as JSON. A nil body sends no payload.
func (c *Client) JSON(t *testing.T, method, path string, body interface{}) *Response {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.Do(t, req)
}

// Do sends req with the client's token attached.
func (c *Client) Do(t *testing.T, req *http.Request) *Response {
	t.Helper()

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	rec := httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, req)

	res := &Response{Code: rec.Code, Header: rec.Header(), Raw: rec.Body.Bytes()}
	if len(res.Raw) > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(res.Raw, res), string(res.Raw))
	}
	return res
}

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	os.Exit(m.Run())
}

func TestClient_Tokenize(t *testing.T) {
	httpmock.RegisterResponder("POST", "http://tgi.local/tokenize",
		func(req *http.Request) (*http.Response, error) {
			var body TGITokenizeReq
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				return httpmock.NewStringResponse(400, ""), nil
			}
			assert.Equal(t, "hello", body.Inputs)
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			return httpmock.NewStringResponse(200, `[{"id":1,"text":"hello"}]`), nil
		},
	)

	c := NewClient(time.Second)
	data, err := c.Tokenize(context.Background(), "http://tgi.local/tokenize", &TGITokenizeReq{Inputs: "hello"})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"text":"hello"}]`, string(data))
}

func TestClient_Tokenize_BadStatus(t *testing.T) {
	httpmock.RegisterResponder("POST", "http://tgi.local/broken",
		httpmock.NewStringResponder(500, "boom"))

	c := NewClient(time.Second)
	_, err := c.Tokenize(context.Background(), "http://tgi.local/broken", &TGITokenizeReq{Inputs: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected http status code:500")
}

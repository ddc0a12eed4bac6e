package ipfs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cidV0 = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
	cidV1 = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"
)

type doc struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: cidV0, want: cidV0},
		{in: "ipfs://" + cidV1, want: cidV1},
		{in: "/ipfs/" + cidV1, want: cidV1},
		{in: "  " + cidV0 + " ", want: cidV0},
		{in: "", wantErr: true},
		{in: "ipfs://QmSampleEvidenceHash1", wantErr: true},
		{in: "hello", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidCID, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	assert.True(t, IsCID(cidV1))
	assert.False(t, IsCID("nope"))
}

func TestPinningClient_PutAndGet(t *testing.T) {
	var gotAuth, gotName string
	var gotBody doc
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/upload":
			gotAuth = r.Header.Get("Authorization")
			gotName = r.Header.Get("X-Name")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = io.WriteString(w, `{"cid":"`+cidV1+`"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/ipfs/"+cidV1:
			_, _ = io.WriteString(w, `{"id":"POL-001","amount":42}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewPinningClient(srv.URL+"/", srv.URL, "tok", time.Second)
	ctx := context.Background()

	cid, err := c.Put(ctx, "policy-1.json", doc{ID: "POL-001", Amount: 42})
	require.NoError(t, err)
	assert.Equal(t, cidV1, cid)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "policy-1.json", gotName)
	assert.Equal(t, "POL-001", gotBody.ID)

	var out doc
	require.NoError(t, c.Get(ctx, "ipfs://"+cidV1, &out))
	assert.Equal(t, doc{ID: "POL-001", Amount: 42}, out)

	err = c.Get(ctx, cidV0, &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPinningClient_UploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"bad token"}`)
	}))
	defer srv.Close()

	_, err := NewPinningClient(srv.URL, srv.URL, "bad", time.Second).Put(context.Background(), "x.json", doc{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestPinningClient_GetInvalidCID(t *testing.T) {
	c := NewPinningClient("http://unused", "http://unused", "tok", time.Second)
	var out doc
	assert.ErrorIs(t, c.Get(context.Background(), "ipfs://QmSampleEvidenceHash1", &out), ErrInvalidCID)
}

type fakeShell struct {
	added   []byte
	addCID  string
	addErr  error
	content map[string]string
}

func (f *fakeShell) Add(r io.Reader, _ ...shell.AddOpts) (string, error) {
	if f.addErr != nil {
		return "", f.addErr
	}
	f.added, _ = io.ReadAll(r)
	return f.addCID, nil
}

func (f *fakeShell) Cat(path string) (io.ReadCloser, error) {
	body, ok := f.content[path]
	if !ok {
		return nil, errors.New("merkledag: not found")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func TestNodeClient_PutAndGet(t *testing.T) {
	fs := &fakeShell{addCID: cidV0, content: map[string]string{cidV0: `{"id":"CLM-1","amount":7}`}}
	n := &NodeClient{sh: fs}
	ctx := context.Background()

	cid, err := n.Put(ctx, "claim.json", doc{ID: "CLM-1", Amount: 7})
	require.NoError(t, err)
	assert.Equal(t, cidV0, cid)
	assert.JSONEq(t, `{"id":"CLM-1","amount":7}`, string(fs.added))

	var out doc
	require.NoError(t, n.Get(ctx, cidV0, &out))
	assert.Equal(t, "CLM-1", out.ID)

	assert.ErrorIs(t, n.Get(ctx, cidV1, &out), ErrNotFound)
}

func TestNodeClient_Errors(t *testing.T) {
	n := &NodeClient{sh: &fakeShell{addErr: errors.New("connection refused")}}
	_, err := n.Put(context.Background(), "x.json", doc{})
	assert.ErrorContains(t, err, "connection refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = n.Put(ctx, "x.json", doc{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Put(context.Background(), "x", nil)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, Disabled{}.Get(context.Background(), cidV0, nil), ErrDisabled)
}

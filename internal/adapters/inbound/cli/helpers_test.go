package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ordercraft/ordercraft/internal/adapters/inbound/cli"
	"github.com/ordercraft/ordercraft/internal/domain"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
customers:
  - id: c1
    name: Ada Lovelace
    email: ada@example.com
  - id: c2
    name: Grace Hopper
    email: grace@navy.mil
products:
  - id: p1
    name: Ceramic Mug
    sku: MUG-1
    price: "12.50"
    stock: 10
  - id: p2
    name: Green Tea
    sku: TEA-1
    price: "4"
  - id: p3
    name: Old Kettle
    sku: KET-0
    price: "30"
    status: archived
`

// project is a temp directory holding a config, a catalog and a journal.
type project struct {
	dir    string
	config string
}

func newProject(t *testing.T, apiURL string) project {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(catalogYAML), 0644))

	cfg := "catalog:\n  file: catalog.yaml\njournal:\n  path: journal/orders.json\nlog:\n  level: error\n"
	if apiURL != "" {
		cfg = "api:\n  base_url: " + apiURL + "\n" + cfg
	}
	path := filepath.Join(dir, ".ordercraft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return project{dir: dir, config: path}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// ordersAPI is a fake POST /orders endpoint.
type ordersAPI struct {
	mu       sync.Mutex
	requests []domain.OrderRequest
	status   int
	body     string
}

func newOrdersAPI(t *testing.T) (*ordersAPI, *httptest.Server) {
	t.Helper()
	api := &ordersAPI{status: http.StatusCreated, body: `{"id":"o-1","order_number":"ORD-42","total":"29"}`}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var req domain.OrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		api.mu.Lock()
		api.requests = append(api.requests, req)
		status, body := api.status, api.body
		api.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *ordersAPI) received() []domain.OrderRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.OrderRequest(nil), a.requests...)
}

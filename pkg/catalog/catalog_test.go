package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", 5*time.Second)
}

func TestParts(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/components", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"1","name":"Ryzen 7 7800X3D","price":449,"categoryId":"cpu","specifications":{"Socket":"AM5"},"cpu":{"powerConsumption":120},"stock":3}]}`))
	})

	min := 100.0
	parts, err := client.Parts(context.Background(), Query{
		Category: "cpu",
		MinPrice: &min,
		Search:   "ryzen",
		Filters:  []string{"Brand=AMD", "Series=Ryzen 7"},
	})
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "AM5", parts[0].Specifications["Socket"])
	assert.Equal(t, 120.0, parts[0].PowerConsumption())

	assert.Equal(t, []string{"cpu"}, gotQuery["category"])
	assert.Equal(t, []string{"100"}, gotQuery["minPrice"])
	assert.Equal(t, []string{"ryzen"}, gotQuery["search"])
	assert.Equal(t, []string{"Brand=AMD", "Series=Ryzen 7"}, gotQuery["filter"])
	assert.Empty(t, gotQuery["maxPrice"])
}

func TestCategoriesBareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","slug":"cpu","name":"Processors"},{"id":"2","slug":"networking","name":"Networking"}]`))
	})

	cats, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "cpu", cats[0].Key())
}

func TestStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.Parts(context.Background(), Query{Category: "gpu"})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	assert.Equal(t, "boom", statusErr.Body)
}

func TestUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url, time.Second).Categories(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Categories(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaveConfiguration(t *testing.T) {
	var method, path string
	var payload Configuration
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"id":"cfg-1"}`))
	})

	items := []models.LineItem{{ID: "cpu-1", Quantity: 1}}
	saved, err := client.SaveConfiguration(context.Background(), Configuration{Name: "Gaming", Items: items})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/configurations", path)
	assert.Equal(t, "cfg-1", saved.ID)
	assert.Equal(t, "Gaming", saved.Name)
	assert.Equal(t, items, payload.Items)

	_, err = client.SaveConfiguration(context.Background(), Configuration{ID: "cfg-1", Name: "Gaming", Items: items})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/configurations/cfg-1", path)
}

func TestConfiguration(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/configurations/cfg-9", r.URL.Path)
		w.Write([]byte(`{"id":"cfg-9","name":"Office","items":[{"id":"p1","quantity":1}],"parts":[{"id":"p1","categoryId":"cpu"}]}`))
	})

	cfg, err := client.Configuration(context.Background(), "cfg-9")
	require.NoError(t, err)
	assert.Equal(t, "Office", cfg.Name)
	require.Len(t, cfg.Parts, 1)
	assert.Equal(t, "cpu", cfg.Parts[0].CategoryID)
}

func TestAddToCartSendsOneLinePerItem(t *testing.T) {
	var mu sync.Mutex
	var lines []models.LineItem
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/items", r.URL.Path)
		var item models.LineItem
		require.NoError(t, json.NewDecoder(r.Body).Decode(&item))
		mu.Lock()
		lines = append(lines, item)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})

	items := []models.LineItem{{ID: "a", Quantity: 1}, {ID: "b", Quantity: 1}}
	require.NoError(t, client.AddToCart(context.Background(), items))
	assert.Equal(t, items, lines)
}

func TestCreateOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cfg-1", body["configurationId"])
		w.Write([]byte(`{"id":"order-1","status":"pending"}`))
	})

	order, err := client.CreateOrder(context.Background(), "cfg-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "cfg-1", order.ConfigurationID)
}

// Package catalog talks to the storefront API that serves parts and stores
// configurations, cart lines and orders.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
)

const (
	errorRequest  = "catalog request %s %s failed: %v"
	errorDecoding = "could not decode catalog response for %s: %v"
)

// ErrUnavailable wraps every transport failure of the catalog API.
var ErrUnavailable = errors.New("catalog unavailable")

// StatusError is returned when the catalog answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s %s returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Query selects the parts of one category.
type Query struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Filters  []string
}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("category", q.Category)
	if q.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for _, f := range q.Filters {
		v.Add("filter", f)
	}
	return v
}

type Configuration struct {
	ID    string            `json:"id,omitempty"`
	Name  string            `json:"name"`
	Items []models.LineItem `json:"items"`
	Parts []models.Part     `json:"parts,omitempty"`
}

type Order struct {
	ID              string `json:"id"`
	ConfigurationID string `json:"configurationId"`
	Status          string `json:"status,omitempty"`
}

// Catalog is what the configurator needs from the storefront API.
type Catalog interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Parts(ctx context.Context, q Query) ([]models.Part, error)
	SaveConfiguration(ctx context.Context, cfg Configuration) (*Configuration, error)
	Configuration(ctx context.Context, id string) (*Configuration, error)
	AddToCart(ctx context.Context, items []models.LineItem) error
	CreateOrder(ctx context.Context, configurationID string) (*Order, error)
}

type Client struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: timeout,
	}
}

func (c *Client) timeout(ctx context.Context) time.Duration {
	t := c.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); t <= 0 || left < t {
			t = left
		}
	}
	return t
}

// do sends one request and decodes a JSON answer into out when out is not nil.
func (c *Client) do(ctx context.Context, agent *fiber.Agent, method, path string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return err
	}
	if t := c.timeout(ctx); t > 0 {
		agent.Timeout(t)
	}
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: "+errorRequest, ErrUnavailable, method, path, errs[0])
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if code < 200 || code > 299 {
		return &StatusError{Method: method, Path: path, Code: code, Body: strings.TrimSpace(string(body))}
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := decode(body, out); err != nil {
		return fmt.Errorf(errorDecoding, path, err)
	}
	return nil
}

// decode accepts either a bare payload or one wrapped in {"data": ...}.
func decode(body []byte, out interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") && json.Unmarshal(body, &envelope) == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(body, out)
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, fiber.Get(c.BaseURL+"/categories"), fiber.MethodGet, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) Parts(ctx context.Context, q Query) ([]models.Part, error) {
	agent := fiber.Get(c.BaseURL + "/components")
	agent.QueryString(q.values().Encode())

	var parts []models.Part
	if err := c.do(ctx, agent, fiber.MethodGet, "/components", &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// SaveConfiguration creates the configuration, or updates it when cfg.ID is set.
func (c *Client) SaveConfiguration(ctx context.Context, cfg Configuration) (*Configuration, error) {
	path, method := "/configurations", fiber.MethodPost
	agent := fiber.Post(c.BaseURL + path)
	if cfg.ID != "" {
		path, method = "/configurations/"+url.PathEscape(cfg.ID), fiber.MethodPut
		agent = fiber.Put(c.BaseURL + path)
	}
	agent.JSON(Configuration{ID: cfg.ID, Name: cfg.Name, Items: cfg.Items})

	var saved Configuration
	if err := c.do(ctx, agent, method, path, &saved); err != nil {
		return nil, err
	}
	if saved.ID == "" {
		saved.ID = cfg.ID
	}
	if saved.Name == "" {
		saved.Name = cfg.Name
	}
	return &saved, nil
}

func (c *Client) Configuration(ctx context.Context, id string) (*Configuration, error) {
	path := "/configurations/" + url.PathEscape(id)

	var cfg Configuration
	if err := c.do(ctx, fiber.Get(c.BaseURL+path), fiber.MethodGet, path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AddToCart adds every line item as its own cart line.
func (c *Client) AddToCart(ctx context.Context, items []models.LineItem) error {
	for _, item := range items {
		agent := fiber.Post(c.BaseURL + "/cart/items")
		agent.JSON(item)
		if err := c.do(ctx, agent, fiber.MethodPost, "/cart/items", nil); err != nil {
			return fmt.Errorf("adding %s to cart: %w", item.ID, err)
		}
	}
	return nil
}

func (c *Client) CreateOrder(ctx context.Context, configurationID string) (*Order, error) {
	agent := fiber.Post(c.BaseURL + "/orders")
	agent.JSON(fiber.Map{"configurationId": configurationID})

	var order Order
	if err := c.do(ctx, agent, fiber.MethodPost, "/orders", &order); err != nil {
		return nil, err
	}
	if order.ConfigurationID == "" {
		order.ConfigurationID = configurationID
	}
	return &order, nil
}

package npControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/blueprint-wear/storefront-api/cache"
	"github.com/blueprint-wear/storefront-api/models"
)

const (
	locationTTL = 24 * time.Hour

	citiesCacheKey      = "np:cities"
	warehousesKeyPrefix = "np:warehouses:"
)

// ErrNotConfigured means NP_API_URL/NP_API_KEY are absent. Shipment creation
// treats this as a hard configuration error, never a silent fallback.
var ErrNotConfigured = errors.New("Nova Poshta credentials not configured")

type City struct {
	Ref         string `json:"Ref"`
	Description string `json:"Description"`
}

type Warehouse struct {
	Ref             string `json:"Ref"`
	Description     string `json:"Description"`
	TypeOfWarehouse string `json:"TypeOfWarehouse,omitempty"`
}

// Client wraps the Nova Poshta JSON API. Location lookups go through the
// injected cache; shipment creation always hits the carrier.
type Client struct {
	apiURL     string
	apiKey     string
	cache      cache.Cache
	httpClient *http.Client
}

func NewClientFromEnv(c cache.Cache) *Client {
	return NewClient(os.Getenv("NP_API_URL"), os.Getenv("NP_API_KEY"), c, nil)
}

func NewClient(apiURL, apiKey string, c cache.Cache, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{apiURL: apiURL, apiKey: apiKey, cache: c, httpClient: httpClient}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

// call posts one modelName/calledMethod request and returns the raw envelope.
func (c *Client) call(ctx context.Context, modelName, calledMethod string, props map[string]interface{}) (*apiResponse, error) {
	if c.apiURL == "" || c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	payload := map[string]interface{}{
		"apiKey":           c.apiKey,
		"modelName":        modelName,
		"calledMethod":     calledMethod,
		"methodProperties": props,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal Nova Poshta payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build Nova Poshta request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Nova Poshta request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read Nova Poshta response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Nova Poshta request failed (%d)", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse Nova Poshta response: %w", err)
	}
	return &parsed, nil
}

// FetchCities returns the full carrier city list, cached for a day under a
// single key. Filtering happens in the handler, not upstream.
func (c *Client) FetchCities(ctx context.Context) ([]City, error) {
	if cached, err := c.cache.Get(ctx, citiesCacheKey); err == nil {
		var cities []City
		if err := json.Unmarshal(cached, &cities); err == nil {
			return cities, nil
		}
	}

	resp, err := c.call(ctx, "Address", "getCities", map[string]interface{}{"Limit": 500})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, carrierError(resp.Errors, "failed to fetch cities")
	}

	var cities []City
	if err := json.Unmarshal(resp.Data, &cities); err != nil {
		return nil, fmt.Errorf("parse city list: %w", err)
	}

	if data, err := json.Marshal(cities); err == nil {
		if err := c.cache.Set(ctx, citiesCacheKey, data, locationTTL); err != nil {
			log.Printf("Failed to cache Nova Poshta cities: %v", err)
		}
	}
	return cities, nil
}

// FetchWarehouses returns delivery points for a city, cached per
// (cityRef, type) for a day.
func (c *Client) FetchWarehouses(ctx context.Context, cityRef string, deliveryType models.DeliveryType) ([]Warehouse, error) {
	cacheKey := warehousesKeyPrefix + cityRef + "-all"
	if deliveryType != "" {
		cacheKey = warehousesKeyPrefix + cityRef + "-" + string(deliveryType)
	}

	if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
		var warehouses []Warehouse
		if err := json.Unmarshal(cached, &warehouses); err == nil {
			return warehouses, nil
		}
	}

	props := map[string]interface{}{
		"CityRef": cityRef,
		"Limit":   200,
	}
	if deliveryType == models.DeliveryTypeLocker {
		props["TypeOfWarehouse"] = "Postomat"
	}

	resp, err := c.call(ctx, "Address", "getWarehouses", props)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, carrierError(resp.Errors, "failed to fetch warehouses")
	}

	var warehouses []Warehouse
	if err := json.Unmarshal(resp.Data, &warehouses); err != nil {
		return nil, fmt.Errorf("parse warehouse list: %w", err)
	}

	if data, err := json.Marshal(warehouses); err == nil {
		if err := c.cache.Set(ctx, cacheKey, data, locationTTL); err != nil {
			log.Printf("Failed to cache Nova Poshta warehouses: %v", err)
		}
	}
	return warehouses, nil
}

type internetDocument struct {
	IntDocNumber string `json:"IntDocNumber"`
}

// CreateShipment registers an InternetDocument with the carrier and returns
// the issued tracking number (TTN).
func (c *Client) CreateShipment(ctx context.Context, order *models.Order) (string, error) {
	serviceType := "WarehouseWarehouse"
	if order.NPDeliveryType == models.DeliveryTypeLocker {
		serviceType = "WarehousePostomat"
	}

	props := map[string]interface{}{
		"PayerType":            "Recipient",
		"PaymentMethod":        "NonCash",
		"DateTime":             time.Now().Format("2006-01-02"),
		"ServiceType":          serviceType,
		"SeatsAmount":          "1",
		"CargoType":            "Parcel",
		"Weight":               "1",
		"Description":          fmt.Sprintf("Clothes order #%d", order.Number),
		"RecipientCityName":    order.NPCity,
		"RecipientAddressName": order.NPWarehouse,
		"RecipientName":        order.CustomerName,
		"RecipientPhone":       order.Phone,
	}
	if order.NPCityRef != "" {
		props["CityRecipient"] = order.NPCityRef
	}
	if order.NPWarehouseRef != "" {
		props["RecipientAddress"] = order.NPWarehouseRef
	}

	resp, err := c.call(ctx, "InternetDocument", "save", props)
	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", carrierError(resp.Errors, "Nova Poshta save failed")
	}

	var documents []internetDocument
	if err := json.Unmarshal(resp.Data, &documents); err != nil {
		return "", fmt.Errorf("parse shipment response: %w", err)
	}
	if len(documents) == 0 {
		return "", nil
	}
	return documents[0].IntDocNumber, nil
}

func carrierError(errs []string, fallback string) error {
	if len(errs) == 0 {
		return errors.New(fallback)
	}
	return errors.New(strings.Join(errs, ", "))
}

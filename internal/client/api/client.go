// Package api implements the REST client for the entry store. All request
// bodies and responses are UTF-8 JSON; requests carry a bearer token.
package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/dkomarov/garagehub/internal/client/models"
	"github.com/dkomarov/garagehub/internal/common"
)

// Client talks to the entry store over HTTPS. It is safe for sequential use
// by one caller; the UI gates itself so only one mutating flow is active at
// a time.
type Client struct {
	http   *resty.Client
	bucket string
	region string
}

// New builds a Client for the store at baseURL. bucket and region feed the
// pure key→URL mapping of PhotoURL.
func New(baseURL, bucket, region string) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(baseURL),
		bucket: bucket,
		region: region,
	}
}

// SetToken installs the bearer token sent on every subsequent request.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// PhotoURL renders a stored object key to a fetchable URL. Keys that are
// already absolute URLs pass through unchanged.
func (c *Client) PhotoURL(key string) string {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

type carsResponse struct {
	Success bool              `json:"success"`
	Cars    []models.CarEntry `json:"cars"`
	Error   string            `json:"error,omitempty"`
}

type carResponse struct {
	Success bool             `json:"success"`
	Car     *models.CarEntry `json:"car"`
	Error   string           `json:"error,omitempty"`
}

type okResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type modsResponse struct {
	Mods []models.Mod `json:"mods"`
}

type presignResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// UserCars fetches all entries owned by the authenticated user. Callers
// refresh their cache wholesale with the result after any mutation.
func (c *Client) UserCars(ctx context.Context) ([]models.CarEntry, error) {
	var out carsResponse
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/garage/user")
	if err := storeErr(resp, err, out.Success, out.Error); err != nil {
		return nil, err
	}
	return out.Cars, nil
}

// CreateCar submits an assembled entry and returns the stored record with
// its assigned id and recomputed totals.
func (c *Client) CreateCar(ctx context.Context, entry models.CarEntry) (*models.CarEntry, error) {
	var out carResponse
	resp, err := c.http.R().SetContext(ctx).SetBody(entry).SetResult(&out).Post("/garage")
	if err := storeErr(resp, err, out.Success, out.Error); err != nil {
		return nil, err
	}
	if out.Car == nil {
		return nil, fmt.Errorf("%w: empty car in response", common.ErrStore)
	}
	return out.Car, nil
}

// UpdateCar replaces an existing entry and all its associated collections.
func (c *Client) UpdateCar(ctx context.Context, entryID int64, entry models.CarEntry) error {
	var out okResponse
	resp, err := c.http.R().SetContext(ctx).SetBody(entry).SetResult(&out).
		Put(fmt.Sprintf("/garage/update/%d", entryID))
	return storeErr(resp, err, out.Success, out.Error)
}

// DeleteCar removes an entry and its owned associations.
func (c *Client) DeleteCar(ctx context.Context, entryID int64) error {
	var out okResponse
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]int64{"entryID": entryID}).
		SetResult(&out).
		Delete("/garage/delete")
	return storeErr(resp, err, out.Success, out.Error)
}

// CatalogMods fetches the shared catalog snapshot, optionally narrowed to a
// single category.
func (c *Client) CatalogMods(ctx context.Context, category string) ([]models.Mod, error) {
	url := "/garage/mods"
	if category != "" {
		url += "/" + category
	}
	var out modsResponse
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get(url)
	if err := storeErr(resp, err, true, ""); err != nil {
		return nil, err
	}
	return out.Mods, nil
}

// PresignedUpload exchanges a file name and MIME type for a pre-authorized
// upload target and the durable key the transferred object will live under.
func (c *Client) PresignedUpload(ctx context.Context, fileName, fileType string) (url, key string, err error) {
	var out presignResponse
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("fileName", fileName).
		SetQueryParam("fileType", fileType).
		SetResult(&out).
		Get("/garage/s3/presigned-url")
	if err := storeErr(resp, err, true, ""); err != nil {
		return "", "", err
	}
	if out.URL == "" || out.Key == "" {
		return "", "", fmt.Errorf("%w: empty presign response", common.ErrStore)
	}
	return out.URL, out.Key, nil
}

// storeErr folds transport failures, HTTP error statuses and success=false
// bodies into the shared error taxonomy.
func storeErr(resp *resty.Response, err error, success bool, msg string) error {
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, resp.Status())
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %s", common.ErrStore, resp.Status())
	}
	if !success {
		if msg == "" {
			msg = "request was not successful"
		}
		return fmt.Errorf("%w: %s", common.ErrStore, msg)
	}
	return nil
}

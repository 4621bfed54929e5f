package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
)

const (
	PinataAPI     = "https://api.pinata.cloud"
	PinataGateway = "https://gateway.pinata.cloud"
)

// ErrNoPinataCredentials is returned when neither a JWT nor a key pair is configured.
var ErrNoPinataCredentials = errors.New("no valid Pinata authentication configured")

// PinataCredentials authenticate against the Pinata API. JWT wins when set.
type PinataCredentials struct {
	JWT       string
	APIKey    string
	SecretKey string
}

// Valid reports whether the credentials can authenticate a request.
func (c PinataCredentials) Valid() bool {
	return c.JWT != "" || (c.APIKey != "" && c.SecretKey != "")
}

func (c PinataCredentials) apply(h http.Header) error {
	switch {
	case c.JWT != "":
		h.Set("Authorization", "Bearer "+c.JWT)
	case c.APIKey != "" && c.SecretKey != "":
		h.Set("pinata_api_key", c.APIKey)
		h.Set("pinata_secret_api_key", c.SecretKey)
	default:
		return ErrNoPinataCredentials
	}
	return nil
}

// PinataClient pins JSON documents to IPFS through Pinata and reads them back from a gateway.
type PinataClient struct {
	apiURL     string
	gatewayURL string
	creds      PinataCredentials
	client     *http.Client
}

// NewPinataClient creates a Pinata client. Empty URLs fall back to the public endpoints.
func NewPinataClient(apiURL, gatewayURL string, creds PinataCredentials, opts ...Option) *PinataClient {
	if apiURL == "" {
		apiURL = PinataAPI
	}
	if gatewayURL == "" {
		gatewayURL = PinataGateway
	}
	return &PinataClient{
		apiURL:     strings.TrimRight(apiURL, "/"),
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		creds:      creds,
		client:     newHTTPClient(opts),
	}
}

// PinResult is the response of a pin request.
type PinResult struct {
	IpfsHash    string `json:"IpfsHash"`
	PinSize     int64  `json:"PinSize"`
	Timestamp   string `json:"Timestamp"`
	IsDuplicate bool   `json:"isDuplicate,omitempty"`
}

// Pin is one row of the pin list.
type Pin struct {
	ID         string    `json:"id"`
	IpfsHash   string    `json:"ipfs_pin_hash"`
	Size       int64     `json:"size"`
	DatePinned time.Time `json:"date_pinned"`
	Metadata   struct {
		Name      string            `json:"name"`
		KeyValues map[string]string `json:"keyvalues"`
	} `json:"metadata"`
}

type pinList struct {
	Count int   `json:"count"`
	Rows  []Pin `json:"rows"`
}

type pinataMetadata struct {
	Name      string            `json:"name"`
	KeyValues map[string]string `json:"keyvalues,omitempty"`
}

// PinJSON uploads data as an indented JSON file. name becomes the pin name when not empty.
func (c *PinataClient) PinJSON(ctx context.Context, data any, name string, keyvalues map[string]string) (*PinResult, error) {
	doc, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	filename := "data.json"
	if name != "" {
		filename = name + ".json"
	}
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", "application/json")
	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(doc); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}

	if name != "" {
		meta, err := json.Marshal(pinataMetadata{Name: name, KeyValues: keyvalues})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		if err := w.WriteField("pinataMetadata", string(meta)); err != nil {
			return nil, fmt.Errorf("failed to write metadata: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/pinning/pinFileToIPFS", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := c.creds.apply(req.Header); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUploadFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %s", common.ErrUploadFailed, pinataError(resp.StatusCode, b))
	}

	var result PinResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", common.ErrUploadFailed, err)
	}
	if result.IpfsHash == "" {
		return nil, fmt.Errorf("%w: response carries no IPFS hash", common.ErrUploadFailed)
	}
	return &result, nil
}

// GatewayURL is the public URL of hash on the configured gateway.
func (c *PinataClient) GatewayURL(hash string) string {
	return c.gatewayURL + "/ipfs/" + url.PathEscape(hash)
}

// Fetch reads a JSON document from the gateway.
func (c *PinataClient) Fetch(ctx context.Context, hash string) (json.RawMessage, error) {
	if hash == "" {
		return nil, fmt.Errorf("%w: empty IPFS hash", common.ErrFetchFailed)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.GatewayURL(hash), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gateway status %d", common.ErrFetchFailed, resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFetchFailed, err)
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("%w: document %s is not JSON", common.ErrFetchFailed, hash)
	}
	return json.RawMessage(b), nil
}

// ListPins returns the currently pinned documents.
func (c *PinataClient) ListPins(ctx context.Context) ([]Pin, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/data/pinList?status=pinned", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if err := c.creds.apply(req.Header); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFetchFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %s", common.ErrFetchFailed, pinataError(resp.StatusCode, b))
	}

	var list pinList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", common.ErrFetchFailed, err)
	}
	return list.Rows, nil
}

// pinataError extracts the message of a Pinata error body, which is either
// {"error": "..."} or {"error": {"reason": ..., "details": ...}}.
func pinataError(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		e := gjson.GetBytes(body, "error")
		if e.IsObject() {
			reason, details := e.Get("reason").String(), e.Get("details").String()
			if details != "" {
				return fmt.Sprintf("status %d: %s: %s", status, reason, details)
			}
			return fmt.Sprintf("status %d: %s", status, reason)
		}
		if e.String() != "" {
			return fmt.Sprintf("status %d: %s", status, e.String())
		}
	}
	return fmt.Sprintf("status %d", status)
}

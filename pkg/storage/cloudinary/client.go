package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Arthur-020/labstock-backend/pkg/config"
	"github.com/Arthur-020/labstock-backend/pkg/logger"
)

const (
	baseEndpoint   = "https://api.cloudinary.com/v1_1"
	requestTimeout = 10 * time.Second
)

// Uploader is the object-store surface the component registry depends on.
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// Client talks to the Cloudinary upload API with signed requests.
type Client struct {
	httpClient *http.Client
	cloudName  string
	apiKey     string
	apiSecret  string
	now        func() time.Time
}

// NewClient validates the credentials and returns a usable client.
func NewClient(cfg config.CloudinaryConfig, logg *logger.Logger) (*Client, error) {
	if !cfg.Configured() {
		return nil, errors.New("cloudinary credentials are required")
	}

	client := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		now:        time.Now,
	}

	if logg != nil {
		logg.Info(context.Background(), "cloudinary client initialized")
	}

	return client, nil
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload pushes image bytes into the given folder and returns the hosted
// secure URL. The whole request is bounded by the client timeout; a failed
// upload must abort whatever write depends on the returned URL.
func (c *Client) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("image payload is empty")
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signed := map[string]string{
		"folder":    folder,
		"timestamp": timestamp,
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "upload")
	if err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	for key, value := range signed {
		if err := writer.WriteField(key, value); err != nil {
			return "", fmt.Errorf("building upload form: %w", err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	if err := writer.WriteField("signature", c.sign(signed)); err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", baseEndpoint, url.PathEscape(c.cloudName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	parsed, err := c.do(req)
	if err != nil {
		return "", err
	}
	if parsed.SecureURL == "" {
		return "", errors.New("upload response missing secure_url")
	}
	return parsed.SecureURL, nil
}

// Destroy removes the asset identified by publicID. Destroying an already
// absent asset is not an error on the Cloudinary side.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return errors.New("public id is required")
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signed := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	form := url.Values{}
	for key, value := range signed {
		form.Set(key, value)
	}
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(signed))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", baseEndpoint, url.PathEscape(c.cloudName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) (*uploadResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var parsed uploadResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding cloudinary response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error.Message != "" {
			return nil, fmt.Errorf("cloudinary request failed: %s: %s", resp.Status, parsed.Error.Message)
		}
		return nil, fmt.Errorf("cloudinary request failed: %s", resp.Status)
	}
	return &parsed, nil
}

// sign produces the SHA-1 parameter signature Cloudinary expects: the
// signed params serialized in key order, followed by the API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

package blobstore

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Options configures the S3-compatible object store client.
type Options struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	CustomDomain    string
	PathStyleAccess bool
}

// Client talks to an S3-compatible object store with SigV4 request signing.
// Works against AWS S3 as well as MinIO/R2 style endpoints.
type Client struct {
	endpoint     *url.URL
	bucket       string
	region       string
	accessKey    string
	secretKey    string
	customDomain string
	pathStyle    bool
	httpc        *http.Client
}

// New validates the options and builds a client.
func New(opts Options) (*Client, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	region := strings.TrimSpace(opts.Region)
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", region)
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid s3 endpoint: %s", endpoint)
	}

	pathStyle := opts.PathStyleAccess
	if opts.Endpoint != "" && !opts.PathStyleAccess {
		pathStyle = true
	}

	return &Client{
		endpoint:     parsed,
		bucket:       bucket,
		region:       region,
		accessKey:    accessKey,
		secretKey:    secretKey,
		customDomain: strings.TrimRight(strings.TrimSpace(opts.CustomDomain), "/"),
		pathStyle:    pathStyle,
		httpc:        &http.Client{Timeout: 45 * time.Second},
	}, nil
}

// Upload stores payload under objectKey and returns its public URL.
func (c *Client) Upload(ctx context.Context, objectKey string, payload []byte, contentType string) (string, error) {
	key := NormalizeObjectKey(objectKey)
	if key == "" {
		return "", fmt.Errorf("invalid s3 object key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := c.do(ctx, http.MethodPut, key, payload, map[string]string{
		"content-length": strconv.Itoa(len(payload)),
		"content-type":   contentType,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return "", fmt.Errorf("s3 upload failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return c.publicURL(key), nil
}

// Download fetches the object stored under objectKey.
func (c *Client) Download(ctx context.Context, objectKey string) ([]byte, error) {
	key := NormalizeObjectKey(objectKey)
	if key == "" {
		return nil, fmt.Errorf("invalid s3 object key")
	}

	resp, err := c.do(ctx, http.MethodGet, key, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("s3 object %s not found", key)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return nil, fmt.Errorf("s3 download failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return io.ReadAll(resp.Body)
}

// CheckAccess issues a lightweight bucket request to verify reachability and
// credentials. Used as a health probe.
func (c *Client) CheckAccess(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "", nil, map[string]string{"max-keys": "0"})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return nil
	}
	return fmt.Errorf("s3 bucket check failed: status=%d", resp.StatusCode)
}

// do signs and executes a request against bucket/objectKey. Extra header
// entries named like query params ("max-keys") become query string values.
func (c *Client) do(ctx context.Context, method, objectKey string, payload []byte, extra map[string]string) (*http.Response, error) {
	requestURL, canonicalURI, host, err := c.buildTarget(objectKey)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	headers := map[string]string{}
	for k, v := range extra {
		if strings.HasPrefix(k, "content-") {
			headers[k] = v
		} else {
			query.Set(k, v)
		}
	}

	now := time.Now().UTC()
	xAmzDate := now.Format("20060102T150405Z")
	dateStamp := now.Format("20060102")
	payloadHash := sha256Hex(payload)

	headers["host"] = host
	headers["x-amz-content-sha256"] = payloadHash
	headers["x-amz-date"] = xAmzDate

	sortedKeys := make([]string, 0, len(headers))
	for k := range headers {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)

	canonicalHeaderLines := make([]string, 0, len(sortedKeys))
	signedHeaders := make([]string, 0, len(sortedKeys))
	for _, k := range sortedKeys {
		canonicalHeaderLines = append(canonicalHeaderLines, k+":"+strings.TrimSpace(headers[k]))
		signedHeaders = append(signedHeaders, k)
	}
	canonicalHeaders := strings.Join(canonicalHeaderLines, "\n")
	signedHeadersStr := strings.Join(signedHeaders, ";")

	canonicalRequest := strings.Join([]string{
		method,
		canonicalURI,
		query.Encode(),
		canonicalHeaders + "\n",
		signedHeadersStr,
		payloadHash,
	}, "\n")

	credentialScope := dateStamp + "/" + c.region + "/s3/aws4_request"
	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		xAmzDate,
		credentialScope,
		sha256Hex([]byte(canonicalRequest)),
	}, "\n")

	signingKey := deriveSigningKey(c.secretKey, dateStamp, c.region, "s3")
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))
	authorization := "AWS4-HMAC-SHA256 Credential=" + c.accessKey + "/" + credentialScope +
		", SignedHeaders=" + signedHeadersStr +
		", Signature=" + signature

	if encoded := query.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, err
	}
	req.Host = host
	for _, k := range sortedKeys {
		if k == "host" {
			continue
		}
		req.Header.Set(k, headers[k])
	}
	req.Header.Set("Authorization", authorization)

	return c.httpc.Do(req)
}

func (c *Client) buildTarget(objectKey string) (requestURL, canonicalURI, host string, err error) {
	encodedKey := encodeObjectKey(objectKey)
	basePath := strings.TrimSuffix(c.endpoint.Path, "/")

	if c.pathStyle {
		canonicalURI = joinURLPath(basePath, c.bucket, encodedKey)
		host = c.endpoint.Host
		requestURL = c.endpoint.Scheme + "://" + host + canonicalURI
		return requestURL, canonicalURI, host, nil
	}

	host = c.endpoint.Host
	if !strings.HasPrefix(strings.ToLower(host), strings.ToLower(c.bucket)+".") {
		host = c.bucket + "." + host
	}
	canonicalURI = joinURLPath(basePath, encodedKey)
	requestURL = c.endpoint.Scheme + "://" + host + canonicalURI
	return requestURL, canonicalURI, host, nil
}

func (c *Client) publicURL(objectKey string) string {
	if c.customDomain != "" {
		return c.customDomain + "/" + objectKey
	}
	requestURL, _, _, err := c.buildTarget(objectKey)
	if err != nil {
		return ""
	}
	return requestURL
}

// NormalizeObjectKey strips leading slashes and collapses duplicate separators.
func NormalizeObjectKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = strings.TrimPrefix(key, "/")
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	return key
}

func encodeObjectKey(key string) string {
	key = NormalizeObjectKey(key)
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func joinURLPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		for _, seg := range strings.Split(p, "/") {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(data))
	return mac.Sum(nil)
}

func deriveSigningKey(secretKey, dateStamp, region, service string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secretKey), dateStamp)
	kRegion := hmacSHA256(kDate, region)
	kService := hmacSHA256(kRegion, service)
	return hmacSHA256(kService, "aws4_request")
}

// Package imagestore keeps product images in an S3-compatible bucket
// (Cloudflare R2), keyed by the product barcode. When the bucket is
// not configured every read degrades to an inline SVG placeholder.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/noespetshop/storefront/config"
)

// PlaceholderSVG is served whenever a product image cannot be found.
const PlaceholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200" role="img" aria-label="Imagem de produto não disponível"><defs><linearGradient id="g" x1="0" x2="0" y1="0" y2="1"><stop offset="0%" stop-color="#f3f4f6"/><stop offset="100%" stop-color="#e5e7eb"/></linearGradient></defs><rect width="200" height="200" fill="url(#g)"/><circle cx="100" cy="80" r="34" fill="#d1d5db"/><rect x="40" y="126" width="120" height="36" rx="8" fill="#d1d5db"/><path d="M70 134c8-10 16-16 30-16s22 6 30 16" stroke="#9ca3af" stroke-width="6" stroke-linecap="round" fill="none"/></svg>`

const PlaceholderContentType = "image/svg+xml"

// ErrNotFound reports that no object exists for any known extension.
var ErrNotFound = pkgerrors.New("product image not found")

// lookupExtensions is the probe order for GetByBarcode.
var lookupExtensions = []string{"png", "jpg", "jpeg", "webp", "gif"}

var mimeToExt = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
}

// Client wraps the R2 bucket plus the URL conventions around it.
// A nil s3 client means storage is unconfigured.
type Client struct {
	s3         *s3.Client
	bucket     string
	publicBase string
	clientURL  string
}

// New builds the image store client. Incomplete storage credentials
// leave the client unconfigured rather than failing startup.
func New(cfg config.StorageConfig, clientURL string) *Client {
	c := &Client{
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
		clientURL:  strings.TrimRight(clientURL, "/"),
		bucket:     cfg.Bucket,
	}

	if cfg.AccountID == "" || cfg.AccessKey == "" || cfg.SecretKey == "" ||
		cfg.Bucket == "" || cfg.Region == "" {
		return c
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		zap.L().Error("image storage init failed", zap.Error(err))
		return c
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	c.s3 = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return c
}

func (c *Client) Configured() bool {
	return c.s3 != nil
}

// ImageKey derives the object key for a barcode: whitespace is
// stripped from the code and the extension defaults to png.
func ImageKey(barcode, ext string) string {
	clean := strings.Join(strings.Fields(barcode), "")
	if ext == "" {
		ext = "png"
	}
	return "products/" + clean + "." + ext
}

// ExtensionFor maps an upload's content type (or filename, as a
// fallback) onto the stored extension.
func ExtensionFor(contentType, filename string) string {
	if ext, ok := mimeToExt[contentType]; ok {
		return ext
	}
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "png"
}

// Put stores the image and returns the object key.
func (c *Client) Put(ctx context.Context, barcode, contentType, filename string, body []byte) (string, error) {
	if !c.Configured() {
		return "", pkgerrors.New("image storage not configured")
	}

	ext := ExtensionFor(contentType, filename)
	key := ImageKey(barcode, ext)
	if contentType == "" {
		contentType = contentTypeForExt(ext)
	}

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", pkgerrors.Wrap(err, "put image")
	}
	return key, nil
}

// GetByBarcode streams the first stored image found for the barcode,
// probing the known extensions in order. Returns ErrNotFound when the
// storage is unconfigured or no key exists.
func (c *Client) GetByBarcode(ctx context.Context, barcode string) (io.ReadCloser, string, error) {
	if barcode == "" || !c.Configured() {
		return nil, "", ErrNotFound
	}

	for _, ext := range lookupExtensions {
		key := ImageKey(barcode, ext)
		out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			var noKey *types.NoSuchKey
			if pkgerrors.As(err, &noKey) {
				continue
			}
			zap.L().Error("image fetch failed", zap.String("key", key), zap.Error(err))
			break
		}

		contentType := contentTypeForExt(ext)
		if out.ContentType != nil && *out.ContentType != "" {
			contentType = *out.ContentType
		}
		return out.Body, contentType, nil
	}
	return nil, "", ErrNotFound
}

// PublicURL is the URL stored on the product after an upload: the
// bucket's public base when configured, the storefront's streaming
// route otherwise.
func (c *Client) PublicURL(key, barcode string) string {
	if c.publicBase != "" {
		return c.publicBase + "/" + key
	}
	return c.clientURL + "/product-image/" + barcode
}

// ImageBaseURL prefixes barcode-derived image links on listed
// products.
func (c *Client) ImageBaseURL() string {
	if c.publicBase != "" {
		return c.publicBase
	}
	return c.clientURL + "/product-image"
}

func contentTypeForExt(ext string) string {
	if ext == "jpg" {
		ext = "jpeg"
	}
	return "image/" + ext
}

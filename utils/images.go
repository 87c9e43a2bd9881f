package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStore uploads meal photos and returns the opaque reference stored
// on the meal. With no bucket configured it keeps the data URI inline,
// which is what the original app did.
type ImageStore struct {
	client *s3.Client
	bucket string
	cdnURL string
}

// NewImageStore returns an inline-only store when bucket is empty.
func NewImageStore(ctx context.Context, region, bucket, cdnURL string) (*ImageStore, error) {
	if bucket == "" {
		return &ImageStore{}, nil
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config for S3: %w", err)
	}
	return &ImageStore{client: s3.NewFromConfig(cfg), bucket: bucket, cdnURL: cdnURL}, nil
}

// StoreMealImage uploads a "data:image/…;base64,…" URI and returns its
// public URL, or passes the URI through untouched in inline mode.
func (st *ImageStore) StoreMealImage(ctx context.Context, dataURI string) (string, error) {
	if st.client == nil {
		return dataURI, nil
	}

	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:image") {
		return "", fmt.Errorf("invalid image data URI")
	}
	mediaType := strings.TrimPrefix(parts[0], "data:")
	contentType := strings.SplitN(mediaType, ";", 2)[0]

	ext := ".jpg"
	if contentType != "image/jpeg" && contentType != "image/jpg" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else if sub := strings.SplitN(contentType, "/", 2); len(sub) == 2 {
			ext = "." + sub[1]
		}
	}

	imageData, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	key := fmt.Sprintf("meals/%d%s", time.Now().UnixNano(), ext)
	_, err = st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(st.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload meal image: %w", err)
	}

	if st.cdnURL != "" {
		return fmt.Sprintf("%s/%s", st.cdnURL, key), nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", st.bucket, key), nil
}

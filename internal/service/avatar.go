package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	awsclient "okravets/contacts-api/aws"

	s3sdk "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"
)

// GravatarFetcher implements repository.AvatarFetcher against a
// gravatar-compatible identicon service. It only confirms the image is
// reachable; the URL itself is what gets stored.
type GravatarFetcher struct {
	client  *http.Client
	baseURL string
}

func NewGravatarFetcher() *GravatarFetcher {
	base := viper.GetString("avatar.fetch_url")
	if base == "" {
		base = "https://www.gravatar.com/avatar"
	}

	return &GravatarFetcher{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: strings.TrimSuffix(base, "/"),
	}
}

func (g *GravatarFetcher) Fetch(ctx context.Context, email string) (string, error) {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	url := fmt.Sprintf("%s/%s?d=identicon", g.baseURL, hex.EncodeToString(sum[:]))

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("avatar service returned status %d", resp.StatusCode)
	}

	return url, nil
}

// AvatarStore keeps uploaded avatar images in S3 under a stable
// per-user key, so re-uploads overwrite instead of piling up
type AvatarStore struct {
	s3     *awsclient.S3Client
	region string
}

func NewAvatarStore(s3 *awsclient.S3Client) *AvatarStore {
	return &AvatarStore{
		s3:     s3,
		region: viper.GetString("aws.region"),
	}
}

func (a *AvatarStore) Upload(ctx context.Context, userID, contentType string, body io.Reader) (string, error) {
	key := "avatars/" + userID

	_, err := a.s3.C.PutObject(ctx, &s3sdk.PutObjectInput{
		Bucket:      a.s3.Bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar, %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", *a.s3.Bucket, a.region, key), nil
}

// Package storage persists profile avatars on local disk or DigitalOcean
// Spaces.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

const MaxAvatarBytes = 2 << 20

var ErrUnsupportedType = errors.New("avatar must be a jpeg, png, gif or webp image")

// Storage saves an uploaded avatar and returns the URL it is served from.
type Storage interface {
	SaveAvatar(fileHeader *multipart.FileHeader, userID int) (string, error)
}

type LocalStorage struct {
	uploadDir string
	urlPrefix string
}

type SpacesStorage struct {
	client *s3.S3
	bucket string
	cdnURL string
}

// NewLocalStorage writes under uploadDir; files are served at urlPrefix.
func NewLocalStorage(uploadDir, urlPrefix string) *LocalStorage {
	return &LocalStorage{uploadDir: uploadDir, urlPrefix: urlPrefix}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client: s3.New(sess),
		bucket: bucket,
		cdnURL: cdnURL,
	}, nil
}

// avatarName builds a unique object name such as "user_12_20250310_101500.png".
func avatarName(userID int, originalFilename string, now time.Time) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if _, ok := imageTypes[ext]; !ok {
		return "", ErrUnsupportedType
	}
	return fmt.Sprintf("user_%d_%s%s", userID, now.Format("20060102_150405"), ext), nil
}

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

func (ls *LocalStorage) SaveAvatar(fileHeader *multipart.FileHeader, userID int) (string, error) {
	name, err := avatarName(userID, fileHeader.Filename, time.Now())
	if err != nil {
		return "", err
	}
	dir := filepath.Join(ls.uploadDir, "avatars")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	log.Debug().Int("user_id", userID).Str("file", name).Msg("avatar stored locally")
	return path.Join(ls.urlPrefix, "avatars", name), nil
}

func (ss *SpacesStorage) SaveAvatar(fileHeader *multipart.FileHeader, userID int) (string, error) {
	name, err := avatarName(userID, fileHeader.Filename, time.Now())
	if err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := "avatars/" + name
	_, err = ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(imageTypes[filepath.Ext(name)]),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to upload avatar to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), key), nil
}

package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// Storage persists uploaded images and hands back the stored name plus the
// URL players can load it from.
type Storage interface {
	SaveFile(fileHeader *multipart.FileHeader, filename string) (string, string, error)
}

type LocalStorage struct {
	uploadDir string
	publicURL string
}

type SpacesStorage struct {
	client   *s3.S3
	bucket   string
	cdnURL   string
	endpoint string
}

func NewLocalStorage(uploadDir, publicURL string) *LocalStorage {
	return &LocalStorage{uploadDir: uploadDir, publicURL: strings.TrimSuffix(publicURL, "/")}
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
		client:   s3.New(sess),
		bucket:   bucket,
		cdnURL:   cdnURL,
		endpoint: endpoint,
	}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// sanitizeFilename strips path components and unsafe characters and prefixes
// the name with an upload timestamp.
func sanitizeFilename(originalFilename string, now time.Time) string {
	base := filepath.Base(originalFilename)
	ext := strings.ToLower(filepath.Ext(base))
	name := strings.TrimSuffix(base, filepath.Ext(base))

	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	if name == "" {
		name = "file"
	}

	return fmt.Sprintf("%s_%s%s", now.Format("20060102_150405"), name, ext)
}

// uniqueFilename resolves same-second collisions with a deterministic counter
// suffix instead of silently overwriting.
func uniqueFilename(filename string, exists func(string) bool) string {
	if !exists(filename) {
		return filename
	}
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, filename string) (string, string, error) {
	if err := os.MkdirAll(ls.uploadDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	stored := sanitizeFilename(filename, time.Now())
	stored = uniqueFilename(stored, func(name string) bool {
		_, err := os.Stat(filepath.Join(ls.uploadDir, name))
		return err == nil
	})
	log.Debug().Str("original", filename).Str("stored", stored).Msg("file upload normalized")

	src, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(ls.uploadDir, stored))
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return stored, fmt.Sprintf("%s/%s", ls.publicURL, stored), nil
}

func (ss *SpacesStorage) SaveFile(fileHeader *multipart.FileHeader, filename string) (string, string, error) {
	stored := sanitizeFilename(filename, time.Now())
	stored = uniqueFilename(stored, ss.objectExists)
	log.Debug().Str("original", filename).Str("stored", stored).Msg("file upload normalized")

	src, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("uploads/%s", stored)
	contentType := getContentType(stored)

	_, err = ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to Spaces")
		return "", "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	cdnURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), key)
	return stored, cdnURL, nil
}

func (ss *SpacesStorage) objectExists(name string) bool {
	_, err := ss.client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(ss.bucket),
		Key:    aws.String(fmt.Sprintf("uploads/%s", name)),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == "NotFound" {
			return false
		}
		return false
	}
	return true
}

func getContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

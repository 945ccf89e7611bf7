package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"pantry-manager/internal/utils"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var AllowImage = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

var ErrFileTypeNotAllowed = errors.New("file type not allowed")

// MaxUploadSize caps a single uploaded file. The HTTP body limit is derived
// from it.
const MaxUploadSize = 10 << 20

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	objectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	awsS3 struct {
		client    objectAPI
		bucket    string
		publicURL string
	}
)

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	endpoint := utils.GetConfig("AWS_S3_ENDPOINT")
	bucket := utils.GetConfig("AWS_S3_BUCKET")

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if key := utils.GetConfig("AWS_ACCESS_KEY"); key != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Fatalf("unable to load AWS config for S3: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &awsS3{
		client:    client,
		bucket:    bucket,
		publicURL: publicBaseURL(utils.GetConfig("AWS_S3_PUBLIC_URL"), endpoint, bucket, region),
	}
}

func publicBaseURL(configured, endpoint, bucket, region string) string {
	switch {
	case configured != "":
		return strings.TrimSuffix(configured, "/")
	case endpoint != "":
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(endpoint, "/"), bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
}

// UploadFile stores the file under a random name that keeps the original
// extension and returns its object key.
func (a *awsS3) UploadFile(ctx context.Context, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if file == nil {
		return "", ErrFileTypeNotAllowed
	}
	if file.Size > MaxUploadSize {
		return "", fmt.Errorf("file exceeds %d bytes", MaxUploadSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	mtype := mimetype.Detect(data)
	if len(allowed) > 0 && !mimetype.EqualsAny(mtype.String(), allowed...) {
		return "", ErrFileTypeNotAllowed
	}

	objectKey := RandomObjectName(file.Filename, mtype.Extension())
	if folder != "" {
		objectKey = path.Join(folder, objectKey)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mtype.String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return a.publicURL + "/" + objectKey
}

// GetObjectKeyFromLink returns "" for links that do not point into the bucket.
func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := a.publicURL + "/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

// RandomObjectName keeps the extension of the uploaded file name, falling back
// to the sniffed one when the name has none.
func RandomObjectName(fileName string, sniffed string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = sniffed
	}
	return uuid.NewString() + ext
}

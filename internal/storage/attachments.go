// Package storage issues upload links for todo attachments.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ytakahashi/todo-backend/internal/config"
)

// Presigner is the subset of *s3.PresignClient used by S3Issuer.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// IssuerError wraps a failure to sign an upload URL.
type IssuerError struct {
	Key string
	Err error
}

func (e *IssuerError) Error() string {
	return fmt.Sprintf("failed to presign upload for %s: %v", e.Key, e.Err)
}

func (e *IssuerError) Unwrap() error { return e.Err }

// Links is the pair handed out for one attachment. UploadURL expires,
// AttachmentURL does not.
type Links struct {
	UploadURL     string
	AttachmentURL string
}

// S3Issuer signs PutObject requests against the attachment bucket.
type S3Issuer struct {
	presigner Presigner
	bucket    string
	baseURL   string
	expires   time.Duration
}

func NewS3Issuer(presigner Presigner, cfg config.AttachmentConfig) *S3Issuer {
	return &S3Issuer{
		presigner: presigner,
		bucket:    cfg.Bucket,
		baseURL:   cfg.PublicBaseURL,
		expires:   cfg.URLExpiration,
	}
}

// Issue presigns an upload of the object named attachmentID. Nothing checks
// that the upload ever happens.
func (i *S3Issuer) Issue(ctx context.Context, attachmentID string) (Links, error) {
	req, err := i.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(i.bucket),
		Key:    aws.String(attachmentID),
	}, s3.WithPresignExpires(i.expires))
	if err != nil {
		return Links{}, &IssuerError{Key: attachmentID, Err: err}
	}

	return Links{
		UploadURL:     req.URL,
		AttachmentURL: i.baseURL + "/" + attachmentID,
	}, nil
}

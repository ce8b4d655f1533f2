package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// s3Connector talks to S3-compatible services through the AWS SDK.
type s3Connector struct {
	client *s3.Client
}

func newS3Connector(cfg Config) (*s3Connector, error) {
	endpoint, err := cfg.EndpointURL()
	if err != nil {
		return nil, err
	}

	// Credentials and region are passed explicitly so nothing is read from,
	// or written to, the process environment for them.
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.region()),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithHTTPClient(&http.Client{Transport: newTransport(cfg.timeout())}),
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(endpoint.String())
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return &s3Connector{client: client}, nil
}

func (c *s3Connector) MakeBucket(ctx context.Context, bucketName string) error {
	_, err := c.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucketName)})
	return s3Error(err)
}

func (c *s3Connector) RemoveBucket(ctx context.Context, bucketName string) error {
	_, err := c.client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucketName)})
	return s3Error(err)
}

func (c *s3Connector) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectName),
		Body:          reader,
		ContentLength: aws.Int64(objectSize),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	_, err := c.client.PutObject(ctx, in)
	return s3Error(err)
}

func (c *s3Connector) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return nil, s3Error(err)
	}
	return out.Body, nil
}

func (c *s3Connector) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectName),
	})
	return s3Error(err)
}

func (c *s3Connector) ListObjectsPage(ctx context.Context, bucketName, continuationToken string, maxKeys int) (ListPage, error) {
	in := &s3.ListObjectsV2Input{Bucket: aws.String(bucketName)}
	if continuationToken != "" {
		in.ContinuationToken = aws.String(continuationToken)
	}
	if maxKeys > 0 {
		in.MaxKeys = aws.Int32(int32(maxKeys))
	}

	out, err := c.client.ListObjectsV2(ctx, in)
	if err != nil {
		return ListPage{}, s3Error(err)
	}

	page := ListPage{
		Keys:                  make([]string, 0, len(out.Contents)),
		IsTruncated:           aws.ToBool(out.IsTruncated),
		NextContinuationToken: aws.ToString(out.NextContinuationToken),
	}
	for _, obj := range out.Contents {
		page.Keys = append(page.Keys, aws.ToString(obj.Key))
	}
	return page, nil
}

func s3Error(err error) error {
	if err == nil {
		return nil
	}

	var code string
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.ErrorCode()
	}

	var status int
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status = respErr.HTTPStatusCode()
	}

	return classify(code, status, err)
}

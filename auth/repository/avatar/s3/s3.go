package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/moneybook/expense-tracker/domain"
)

type avatarRepo struct {
	bucket string
	region string
}

func CreateAvatarRepo(bucket, region string) domain.AvatarRepo {
	return &avatarRepo{
		bucket: bucket,
		region: region,
	}
}

func (a *avatarRepo) Upload(ctx context.Context, fileReader io.Reader, key string) (string, error) {
	client, err := a.createClient(ctx)
	if err != nil {
		return "", err
	}

	if _, err := client.PutObject(ctx, &awsS3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   fileReader,
	}); err != nil {
		return "", errors.Wrap(err, "put object failed")
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key), nil
}

func (a *avatarRepo) Delete(ctx context.Context, key string) error {
	client, err := a.createClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.DeleteObject(ctx, &awsS3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return errors.Wrap(err, "delete object failed")
	}
	return nil
}

func (a *avatarRepo) createClient(ctx context.Context) (*awsS3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(a.region))
	if err != nil {
		return nil, errors.Wrap(err, "load default config failed")
	}
	return awsS3.NewFromConfig(cfg), nil
}

package aws_client

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
)

// S3Config builds an AWS config for S3 or any S3 compatible endpoint.
func S3Config(region, endpoint, accessKeyID, accessKeySecret string) *aws.Config {
	cfg := &aws.Config{
		Region: aws.String(region),
	}
	if accessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentials(accessKeyID, accessKeySecret, "")
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	return cfg
}

// R2Config targets Cloudflare R2, which speaks the S3 API on a per-account endpoint.
func R2Config(accountID, accessKeyID, accessKeySecret string) *aws.Config {
	return &aws.Config{
		Endpoint: aws.String("https://" + accountID + ".r2.cloudflarestorage.com"),
		// R2 uses "auto" region
		Region:           aws.String("auto"),
		Credentials:      credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
	}
}

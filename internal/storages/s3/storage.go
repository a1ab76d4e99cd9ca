// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package s3

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/defaults"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/pgcatcheck/internal/storages"
)

const keyDelimiter = "/"

const (
	awsErrorCodeNotFound  = "NotFound"
	awsErrorCodeNoSuchKey = "NoSuchKey"
)

// reportContentTypes - content type by the last extension of the report object.
var reportContentTypes = map[string]string{
	".json": "application/json",
	".yaml": "application/yaml",
	".gz":   "application/gzip",
}

// uploadOptions - attributes applied to every uploaded report.
type uploadOptions struct {
	storageClass         string
	serverSideEncryption string
}

// ReportBucket - reports archived in an S3 bucket. Every database gets its own key prefix
// through SubStorage.
type ReportBucket struct {
	bucket   string
	prefix   string
	listV1   bool
	upload   uploadOptions
	client   s3iface.S3API
	uploader s3manageriface.UploaderAPI
}

func NewStorage(ctx context.Context, cfg *Config, logLevel string) (*ReportBucket, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid s3 storage config: %w", err)
	}

	ses, err := newSession(cfg)
	if err != nil {
		return nil, err
	}

	awsCfg := aws.NewConfig().
		WithS3ForcePathStyle(cfg.ForcePathStyle).
		WithLogger(newAWSLogger(log.Logger, cfg.Bucket)).
		WithLogLevel(awsLogLevel(logLevel))
	request.WithRetryer(awsCfg, client.DefaultRetryer{NumMaxRetries: cfg.MaxRetries})
	if cfg.Endpoint != "" {
		awsCfg.WithEndpoint(cfg.Endpoint)
	}
	if cfg.Region != "" {
		awsCfg.WithRegion(cfg.Region)
	}
	if cfg.NoVerifySsl {
		awsCfg.WithHTTPClient(&http.Client{
			Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}},
		})
	}

	creds, err := reportCredentials(ctx, ses, awsCfg, &cfg.Credentials)
	if err != nil {
		return nil, err
	}
	if creds != nil {
		awsCfg.WithCredentials(creds)
	}

	service := s3.New(ses, awsCfg)
	log.Debug().
		Str("Region", aws.StringValue(service.Config.Region)).
		Str("Bucket", cfg.Bucket).
		Str("Prefix", cfg.Prefix).
		Msg("reports are archived to s3")

	return &ReportBucket{
		bucket: cfg.Bucket,
		prefix: fixPrefix(cfg.Prefix),
		listV1: cfg.UseListObjectsV1,
		upload: uploadOptions{
			storageClass:         cfg.StorageClass,
			serverSideEncryption: cfg.ServerSideEncryption,
		},
		client:   service,
		uploader: s3manager.NewUploaderWithClient(service),
	}, nil
}

// newSession - the custom CA bundle can be set only when the session is created.
func newSession(cfg *Config) (*session.Session, error) {
	if cfg.CertFile == "" {
		ses, err := session.NewSession()
		if err != nil {
			return nil, fmt.Errorf("cannot establish session: %w", err)
		}
		return ses, nil
	}
	file, err := os.Open(cfg.CertFile)
	if err != nil {
		return nil, fmt.Errorf("unable to open cert file: %w", err)
	}
	defer file.Close()
	ses, err := session.NewSessionWithOptions(session.Options{CustomCABundle: file})
	if err != nil {
		return nil, fmt.Errorf("cannot establish session using provided cert file: %w", err)
	}
	return ses, nil
}

// reportCredentials - static keys, or the keys of the assumed role, take precedence over the
// default provider chain. nil means the SDK defaults are used as is.
func reportCredentials(
	ctx context.Context, ses *session.Session, awsCfg *aws.Config, c *Credentials,
) (*credentials.Credentials, error) {
	value := credentials.Value{
		AccessKeyID:     c.AccessKeyId,
		SecretAccessKey: c.SecretAccessKey,
		SessionToken:    c.SessionToken,
	}
	if c.RoleArn != "" {
		out, err := sts.New(ses).AssumeRoleWithContext(ctx, &sts.AssumeRoleInput{
			RoleArn:         aws.String(c.RoleArn),
			RoleSessionName: aws.String(c.SessionName),
		})
		if err != nil {
			return nil, fmt.Errorf("unable to assume role %s: %w", c.RoleArn, err)
		}
		value = credentials.Value{
			AccessKeyID:     aws.StringValue(out.Credentials.AccessKeyId),
			SecretAccessKey: aws.StringValue(out.Credentials.SecretAccessKey),
			SessionToken:    aws.StringValue(out.Credentials.SessionToken),
		}
	}
	if value.AccessKeyID == "" || value.SecretAccessKey == "" {
		return nil, nil
	}

	providers := append(
		[]credentials.Provider{&credentials.StaticProvider{Value: value}},
		defaults.CredProviders(awsCfg, defaults.Handlers())...,
	)
	return credentials.NewCredentials(&credentials.ChainProvider{
		VerboseErrors: aws.BoolValue(awsCfg.CredentialsChainVerboseErrors),
		Providers:     providers,
	}), nil
}

func (b *ReportBucket) GetCwd() string {
	return b.prefix
}

func (b *ReportBucket) Dirname() string {
	return path.Base(b.prefix)
}

// ListDir - report objects directly under the prefix and the database prefixes below it.
func (b *ReportBucket) ListDir(ctx context.Context) (files []string, dirs []storages.Storager, err error) {
	collect := func(commonPrefixes []*s3.CommonPrefix, contents []*s3.Object) {
		for _, p := range commonPrefixes {
			dirs = append(dirs, b.SubStorage(aws.StringValue(p.Prefix), false))
		}
		for _, object := range contents {
			files = append(files, strings.TrimPrefix(aws.StringValue(object.Key), b.prefix))
		}
	}

	if b.listV1 {
		err = b.client.ListObjectsPagesWithContext(
			ctx,
			&s3.ListObjectsInput{
				Bucket:    aws.String(b.bucket),
				Prefix:    aws.String(b.prefix),
				Delimiter: aws.String(keyDelimiter),
			},
			func(page *s3.ListObjectsOutput, _ bool) bool {
				collect(page.CommonPrefixes, page.Contents)
				return true
			},
		)
	} else {
		err = b.client.ListObjectsV2PagesWithContext(
			ctx,
			&s3.ListObjectsV2Input{
				Bucket:    aws.String(b.bucket),
				Prefix:    aws.String(b.prefix),
				Delimiter: aws.String(keyDelimiter),
			},
			func(page *s3.ListObjectsV2Output, _ bool) bool {
				collect(page.CommonPrefixes, page.Contents)
				return true
			},
		)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("unable to list reports under \"%s\": %w", b.prefix, err)
	}
	return files, dirs, nil
}

func (b *ReportBucket) GetObject(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := b.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", storages.ErrFileNotFound, name)
		}
		return nil, fmt.Errorf("unable to get report %s: %w", name, err)
	}
	return obj.Body, nil
}

func (b *ReportBucket) PutObject(ctx context.Context, name string, body io.Reader) error {
	in := &s3manager.UploadInput{
		Bucket:       aws.String(b.bucket),
		Key:          aws.String(b.key(name)),
		Body:         body,
		StorageClass: aws.String(b.upload.storageClass),
	}
	if ct, ok := reportContentTypes[path.Ext(name)]; ok {
		in.ContentType = aws.String(ct)
	}
	if b.upload.serverSideEncryption != "" {
		in.ServerSideEncryption = aws.String(b.upload.serverSideEncryption)
	}
	if _, err := b.uploader.UploadWithContext(ctx, in); err != nil {
		return fmt.Errorf("unable to upload report %s: %w", name, err)
	}
	return nil
}

func (b *ReportBucket) Exists(ctx context.Context, name string) (bool, error) {
	_, err := b.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("unable to check report %s: %w", name, err)
	}
	return true, nil
}

func (b *ReportBucket) SubStorage(subPath string, relative bool) storages.Storager {
	sub := *b
	sub.prefix = fixPrefix(subPath)
	if relative {
		sub.prefix = fixPrefix(path.Join(b.prefix, subPath))
	}
	return &sub
}

func (b *ReportBucket) key(name string) string {
	return path.Join(b.prefix, name)
}

func isNotFound(err error) bool {
	var awsErr awserr.Error
	return errors.As(err, &awsErr) &&
		(awsErr.Code() == awsErrorCodeNotFound || awsErr.Code() == awsErrorCodeNoSuchKey)
}

func fixPrefix(prefix string) string {
	if prefix != "" && !strings.HasSuffix(prefix, keyDelimiter) {
		prefix += keyDelimiter
	}
	return prefix
}

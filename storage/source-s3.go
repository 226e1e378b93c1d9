/*
Copyright (C) 2025  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Source fetches programs from S3 or an S3-compatible store. The client
// is created lazily from Settings on first use.
type S3Source struct {
	mu     sync.Mutex
	client *s3.Client
}

var defaultS3 S3Source

// settings changed: build a new client next time
func resetS3() {
	defaultS3.mu.Lock()
	defaultS3.client = nil
	defaultS3.mu.Unlock()
}

// parseS3URL splits s3://bucket/key
func parseS3URL(name string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(name, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func (s *S3Source) ensureOpen(ctx context.Context) (*s3.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if Settings.S3Region != "" {
		opts = append(opts, config.WithRegion(Settings.S3Region))
	}
	if Settings.S3AccessKeyID != "" && Settings.S3SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				Settings.S3AccessKeyID,
				Settings.S3SecretAccessKey,
				"", // session token
			),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("S3: failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if Settings.S3Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(Settings.S3Endpoint)
		})
	}
	if Settings.S3ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	s.client = s3.NewFromConfig(cfg, s3Opts...)
	return s.client, nil
}

// Open streams the object bucket/key; the caller closes it.
func (s *S3Source) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	client, err := s.ensureOpen(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, err)
	}
	return resp.Body, nil
}

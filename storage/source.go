/*
Copyright (C) 2024  Carl-Philip Hänsch

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
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/docker/go-units"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// LoadSource reads one program text and trims it. name is either "-"
// (stdin), s3://bucket/key or a file path. Names ending in .xz, .lz4 or .gz
// are decompressed on the fly.
func LoadSource(ctx context.Context, name string) (string, error) {
	limit, err := MaxSourceBytes()
	if err != nil {
		return "", err
	}
	rc, err := openSource(ctx, name)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	r, err := decompress(name, rc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if int64(len(b)) > limit {
		return "", fmt.Errorf("%s: program is larger than MaxSourceSize (%s)", name, units.BytesSize(float64(limit)))
	}
	return strings.TrimSpace(string(b)), nil
}

func openSource(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	if bucket, key, ok := parseS3URL(name); ok {
		return defaultS3.Open(ctx, bucket, key)
	}
	return os.Open(name)
}

func decompress(name string, r io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(name, ".xz"):
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return xr, nil
	case strings.HasSuffix(name, ".lz4"):
		return lz4.NewReader(r), nil
	case strings.HasSuffix(name, ".gz"):
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return gr, nil
	}
	return r, nil
}

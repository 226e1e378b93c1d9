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
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const program = "  (println \"hi\")\n(+ 1 2)\n\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func compressed(t *testing.T, wrap func(io.Writer) (io.WriteCloser, error)) []byte {
	t.Helper()
	var b bytes.Buffer
	w, err := wrap(&b)
	require.NoError(t, err)
	_, err = io.WriteString(w, program)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return b.Bytes()
}

func TestLoadSourcePlain(t *testing.T) {
	p := writeFile(t, "prog.scm", []byte(program))
	src, err := LoadSource(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "(println \"hi\")\n(+ 1 2)", src)
}

func TestLoadSourceCompressed(t *testing.T) {
	cases := map[string]func(io.Writer) (io.WriteCloser, error){
		"prog.scm.xz": func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		},
		"prog.scm.lz4": func(w io.Writer) (io.WriteCloser, error) {
			return lz4.NewWriter(w), nil
		},
		"prog.scm.gz": func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(w), nil
		},
	}
	for name, wrap := range cases {
		t.Run(name, func(t *testing.T) {
			p := writeFile(t, name, compressed(t, wrap))
			src, err := LoadSource(context.Background(), p)
			require.NoError(t, err)
			assert.Equal(t, "(println \"hi\")\n(+ 1 2)", src)
		})
	}
}

func TestLoadSourceBrokenArchive(t *testing.T) {
	p := writeFile(t, "prog.scm.xz", []byte(program))
	_, err := LoadSource(context.Background(), p)
	assert.Error(t, err)
}

func TestLoadSourceMissing(t *testing.T) {
	_, err := LoadSource(context.Background(), filepath.Join(t.TempDir(), "nope.scm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSourceSizeLimit(t *testing.T) {
	old := Settings.MaxSourceSize
	t.Cleanup(func() { Settings.MaxSourceSize = old })

	p := writeFile(t, "prog.scm", bytes.Repeat([]byte("1 "), 1024))
	Settings.MaxSourceSize = "1KiB"
	_, err := LoadSource(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxSourceSize")

	Settings.MaxSourceSize = "2KiB"
	_, err = LoadSource(context.Background(), p)
	assert.NoError(t, err)

	Settings.MaxSourceSize = "lots"
	_, err = LoadSource(context.Background(), p)
	assert.Error(t, err)
}

func TestParseS3URL(t *testing.T) {
	cases := []struct {
		in          string
		bucket, key string
		ok          bool
	}{
		{"s3://progs/demo.scm", "progs", "demo.scm", true},
		{"s3://progs/dir/demo.scm.xz", "progs", "dir/demo.scm.xz", true},
		{"s3://progs", "", "", false},
		{"s3://progs/", "", "", false},
		{"s3:///demo.scm", "", "", false},
		{"demo.scm", "", "", false},
		{"/tmp/s3://x/y", "", "", false},
	}
	for _, c := range cases {
		bucket, key, ok := parseS3URL(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.bucket, bucket, c.in)
		assert.Equal(t, c.key, key, c.in)
	}
}

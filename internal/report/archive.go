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

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/greenmaskio/pgcatcheck/internal/utils/countwriter"
	"github.com/greenmaskio/pgcatcheck/internal/utils/ioutils"
)

const (
	ArchiveFormatJson = "json"
	ArchiveFormatYaml = "yaml"
)

// ObjectPutter - the part of the storage used for archiving.
type ObjectPutter interface {
	PutObject(ctx context.Context, filePath string, body io.Reader) error
}

type ObjectGetter interface {
	GetObject(ctx context.Context, filePath string) (io.ReadCloser, error)
}

// Document - full result of an audit run.
type Document struct {
	RunID      uuid.UUID `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Database   string    `json:"database,omitempty" yaml:"database,omitempty"`
	// ServerVersion - version the audit was performed for in server_version_num form.
	ServerVersion int      `json:"server_version" yaml:"server_version"`
	Flavor        string   `json:"flavor" yaml:"flavor"`
	Summary       *Summary `json:"summary" yaml:"summary"`
	Events        []Event  `json:"events" yaml:"events"`
}

func NewDocument(startedAt time.Time) *Document {
	return &Document{
		RunID:     uuid.New(),
		StartedAt: startedAt,
	}
}

// FileName - archive object name for the format.
func (d *Document) FileName(format string, compress bool) string {
	name := fmt.Sprintf("%s.%s", d.RunID.String(), format)
	if compress {
		name += ".gz"
	}
	return name
}

// Encode - serializes the document.
func (d *Document) Encode(w io.Writer, format string) error {
	switch format {
	case ArchiveFormatJson, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("unable to encode json: %w", err)
		}
	case ArchiveFormatYaml:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("unable to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("unable to encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("unknown archive format \"%s\"", format)
	}
	return nil
}

// ArchiveInfo - stored archive object.
type ArchiveInfo struct {
	Name string
	// Size - size of the encoded document.
	Size int64
	// StoredSize - size of the stored object. It differs from Size when the archive is compressed.
	StoredSize int64
}

// Archive - stores the document in the storage.
func Archive(ctx context.Context, st ObjectPutter, d *Document, format string, compress bool) (*ArchiveInfo, error) {
	if format == "" {
		format = ArchiveFormatJson
	}
	buf := &bufferCloser{}
	stored := countwriter.NewWriter(buf)
	var w io.WriteCloser = stored
	if compress {
		w = ioutils.NewGzipWriter(stored, true)
	}
	encoded := countwriter.NewWriter(w)
	if err := d.Encode(encoded, format); err != nil {
		return nil, err
	}
	if err := encoded.Close(); err != nil {
		return nil, fmt.Errorf("error closing archive writer: %w", err)
	}
	info := &ArchiveInfo{
		Name:       d.FileName(format, compress),
		Size:       encoded.GetCount(),
		StoredSize: stored.GetCount(),
	}
	if err := st.PutObject(ctx, info.Name, &buf.Buffer); err != nil {
		return nil, fmt.Errorf("unable to store archive \"%s\": %w", info.Name, err)
	}
	return info, nil
}

// IsArchiveName - reports whether the object name looks like the archived document.
func IsArchiveName(name string) bool {
	_, _, ok := parseArchiveName(name)
	return ok
}

func parseArchiveName(name string) (format string, compressed bool, ok bool) {
	if strings.HasSuffix(name, ".gz") {
		compressed = true
		name = strings.TrimSuffix(name, ".gz")
	}
	switch {
	case strings.HasSuffix(name, "."+ArchiveFormatJson):
		return ArchiveFormatJson, compressed, true
	case strings.HasSuffix(name, "."+ArchiveFormatYaml):
		return ArchiveFormatYaml, compressed, true
	}
	return "", false, false
}

// LoadArchive - reads the archived document. The format and compression are derived from the name.
func LoadArchive(ctx context.Context, st ObjectGetter, name string) (*Document, error) {
	format, compressed, ok := parseArchiveName(name)
	if !ok {
		return nil, fmt.Errorf("unknown archive format of \"%s\"", name)
	}
	r, err := st.GetObject(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("unable to get archive \"%s\": %w", name, err)
	}
	if compressed {
		r, err = ioutils.NewGzipReader(r, true)
		if err != nil {
			return nil, fmt.Errorf("unable to open compressed archive: %w", err)
		}
	}
	defer r.Close()

	d := &Document{}
	switch format {
	case ArchiveFormatJson:
		err = json.NewDecoder(r).Decode(d)
	case ArchiveFormatYaml:
		err = yaml.NewDecoder(r).Decode(d)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to decode archive \"%s\": %w", name, err)
	}
	return d, nil
}

type bufferCloser struct {
	bytes.Buffer
}

func (bc *bufferCloser) Close() error {
	return nil
}

package models

import (
	"bytes"
	"genolens/api/models/constants"
	"io"

	"github.com/google/uuid"
)

// GenomicFile is the blob handle handed to the upload simulator.
type GenomicFile interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

type UploadState struct {
	Id              uuid.UUID             `json:"id"`
	FileName        string                `json:"fileName"`
	Size            int64                 `json:"size"`
	Kind            constants.FileKind    `json:"detectedKind"`
	MimeType        string                `json:"mimeType,omitempty"`
	ProgressPercent int                   `json:"progressPercent"`
	Phase           constants.UploadPhase `json:"phase"`
}

type inMemoryFile struct {
	name string
	data []byte
}

// NewInMemoryFile wraps already-buffered bytes, e.g. a multipart upload
// whose temporary file will not outlive the request.
func NewInMemoryFile(name string, data []byte) GenomicFile {
	return &inMemoryFile{name: name, data: data}
}

func (f *inMemoryFile) Name() string { return f.name }
func (f *inMemoryFile) Size() int64  { return int64(len(f.data)) }
func (f *inMemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

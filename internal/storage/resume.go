// Package storage keeps uploaded résumés in object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

const (
	DefaultMaxResumeBytes = 5 << 20
	sniffLen              = 3072 // mimetype's default read limit
	keyPrefix             = "resumes/"
)

var (
	ErrUnsupportedType = errors.New("unsupported résumé file type")
	ErrTooLarge        = errors.New("résumé file too large")
	ErrEmpty           = errors.New("résumé file is empty")
)

// allowedTypes are the résumé formats the portal accepts.
var allowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ObjectStore is the slice of an object storage client the résumé store needs.
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string, meta map[string]string) error
}

// Stored describes a résumé after upload.
type Stored struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type ResumeStore struct {
	objects  ObjectStore
	maxBytes int64
}

func NewResumeStore(objects ObjectStore, maxBytes int64) *ResumeStore {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxResumeBytes
	}
	return &ResumeStore{objects: objects, maxBytes: maxBytes}
}

// MaxBytes is the upload size limit.
func (s *ResumeStore) MaxBytes() int64 { return s.maxBytes }

// Put sniffs the content, rejects anything that is not pdf, doc or docx, and uploads it
// under a fresh key. size is the declared length of r.
func (s *ResumeStore) Put(ctx context.Context, filename string, r io.Reader, size int64) (Stored, error) {
	if size == 0 {
		return Stored{}, ErrEmpty
	}
	if size > s.maxBytes {
		return Stored{}, ErrTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Stored{}, eris.Wrap(err, "reading résumé header")
	}
	head = head[:n]
	if n == 0 {
		return Stored{}, ErrEmpty
	}

	mt := mimetype.Detect(head)
	if !isAllowed(mt) {
		return Stored{}, eris.Wrapf(ErrUnsupportedType, "detected %s", mt.String())
	}

	contentType := baseType(mt.String())
	key := keyPrefix + uuid.NewString() + mt.Extension()
	meta := map[string]string{"original-name": path.Base(filename)}
	body := io.MultiReader(bytes.NewReader(head), r)
	if err := s.objects.PutObject(ctx, key, body, size, contentType, meta); err != nil {
		return Stored{}, eris.Wrap(err, "uploading résumé")
	}
	return Stored{Key: key, ContentType: contentType, Size: size}, nil
}

func isAllowed(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		for _, a := range allowedTypes {
			if m.Is(a) {
				return true
			}
		}
	}
	return false
}

func baseType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		return strings.TrimSpace(ct[:i])
	}
	return ct
}

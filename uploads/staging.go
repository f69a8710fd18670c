// Package uploads stages gallery images before they are attached to a
// vendor listing. Images are kept as data URLs only; there is no
// durable object storage behind this.
package uploads

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxFileSize is the per-file upload limit.
const MaxFileSize = 5 << 20 // 5MB

var (
	ErrFileTooLarge    = errors.New("file exceeds the 5MB limit")
	ErrUnsupportedType = errors.New("unsupported image type")
)

var mimeByExt = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// StagedImage is one accepted upload, ready to append to a gallery.
type StagedImage struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	DataURL string `json:"data_url"`
}

// Stager validates and encodes image batches. StepPercent and the
// sleep hook reproduce the fixed-increment progress ramp; handlers run
// with a zero delay, tests inject a recorder.
type Stager struct {
	StepPercent int
	Delay       time.Duration
	Sleep       func(time.Duration)          // defaults to time.Sleep
	OnProgress  func(id string, percent int) // optional
}

// Validate checks the file name's extension and the content size
// without encoding anything.
func Validate(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := mimeByExt[ext]; !ok {
		return fmt.Errorf("%s: %w", name, ErrUnsupportedType)
	}
	if size > MaxFileSize {
		return fmt.Errorf("%s: %w", name, ErrFileTooLarge)
	}
	return nil
}

// Stage validates one file and converts it to a data URL, walking the
// progress callback from 0 to 100 in StepPercent increments.
func (s *Stager) Stage(name string, content []byte) (*StagedImage, error) {
	if err := Validate(name, int64(len(content))); err != nil {
		return nil, err
	}

	step := s.StepPercent
	if step <= 0 {
		step = 10
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	staged := &StagedImage{
		ID:   uuid.NewString(),
		Name: name,
	}

	for percent := 0; percent <= 100; percent += step {
		if s.OnProgress != nil {
			s.OnProgress(staged.ID, percent)
		}
		if percent < 100 && s.Delay > 0 {
			sleep(s.Delay)
		}
	}

	mime := mimeByExt[strings.ToLower(filepath.Ext(name))]
	staged.DataURL = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(content)
	return staged, nil
}

// File is one member of an upload batch.
type File struct {
	Name    string
	Content []byte
}

// StageAll stages a batch in order, failing on the first invalid file.
func (s *Stager) StageAll(files []File) ([]*StagedImage, error) {
	staged := make([]*StagedImage, 0, len(files))
	for _, f := range files {
		img, err := s.Stage(f.Name, f.Content)
		if err != nil {
			return nil, err
		}
		staged = append(staged, img)
	}
	return staged, nil
}

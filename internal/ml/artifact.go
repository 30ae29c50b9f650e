package ml

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"house_price/internal/domain"
)

const (
	ArtifactFormat  = "house-price-pipeline"
	ArtifactVersion = 1
)

type ArtifactHeader struct {
	Format    string                  `json:"format"`
	Version   int                     `json:"version"`
	ID        string                  `json:"id"`
	CreatedAt time.Time               `json:"created_at"`
	Schema    domain.SchemaDescriptor `json:"schema"`
	TrainRows int                     `json:"train_rows"`
}

// Artifact is a fitted pipeline plus the header that identifies it. Once
// loaded it is read-only and implements domain.Model.
type Artifact struct {
	Header   ArtifactHeader `json:"header"`
	Pipeline *Pipeline      `json:"pipeline"`
}

func NewArtifact(p *Pipeline, trainRows int) *Artifact {
	return &Artifact{
		Header: ArtifactHeader{
			Format:    ArtifactFormat,
			Version:   ArtifactVersion,
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			Schema:    domain.Schema,
			TrainRows: trainRows,
		},
		Pipeline: p,
	}
}

func (a *Artifact) ID() string { return a.Header.ID }

func (a *Artifact) Predict(ctx context.Context, records []domain.Record) ([]float64, error) {
	return a.Pipeline.Predict(ctx, records)
}

func (a *Artifact) Categories() ([][]string, error) { return a.Pipeline.Categories() }

// Save writes the artifact as gzip-compressed JSON. The file is written next
// to path and renamed into place, so readers never see a partial artifact.
func (a *Artifact) Save(path string) error {
	if a.Pipeline == nil || a.Pipeline.Model == nil || len(a.Pipeline.Model.Trees) == 0 {
		return domain.ErrNotFitted
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".pipeline-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := a.write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (a *Artifact) write(w io.Writer) error {
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(a); err != nil {
		zw.Close()
		return fmt.Errorf("encode artifact: %w", err)
	}
	return zw.Close()
}

// LoadArtifact reads and validates the artifact at path.
func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadArtifact(f)
}

func ReadArtifact(r io.Reader) (*Artifact, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIncompatibleArtifact, err)
	}
	defer zr.Close()

	var a Artifact
	if err := json.NewDecoder(zr).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrIncompatibleArtifact, err)
	}
	h := a.Header
	if h.Format != ArtifactFormat || h.Version != ArtifactVersion {
		return nil, fmt.Errorf("%w: format %q version %d, want %q version %d",
			domain.ErrIncompatibleArtifact, h.Format, h.Version, ArtifactFormat, ArtifactVersion)
	}
	if !h.Schema.Equal(domain.Schema) {
		return nil, fmt.Errorf("%w: schema mismatch", domain.ErrIncompatibleArtifact)
	}
	if a.Pipeline == nil {
		return nil, fmt.Errorf("%w: no pipeline", domain.ErrIncompatibleArtifact)
	}
	if err := a.Pipeline.prepare(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIncompatibleArtifact, err)
	}
	return &a, nil
}

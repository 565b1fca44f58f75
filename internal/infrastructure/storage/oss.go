package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/jhoicas/Practicas-api/internal/application/ports"
)

var _ ports.FileStorage = (*OSS)(nil)

// OSSConfig credenciales y bucket.
type OSSConfig struct {
	Endpoint     string
	AccessKey    string
	AccessSecret string
	Bucket       string
}

// OSS guarda archivos en un bucket privado de Aliyun OSS.
type OSS struct {
	bucket *oss.Bucket
	now    func() time.Time
}

// NewOSS abre el cliente y el bucket.
func NewOSS(cfg OSSConfig) (*OSS, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.AccessSecret == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("storage oss: faltan OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET")
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}
	return &OSS{bucket: bkt, now: time.Now}, nil
}

func (s *OSS) Save(ctx context.Context, folder, name string, r io.Reader) (*ports.StoredFile, error) {
	key := objectKey(folder, name, s.now())
	ct := mime.TypeByExtension(path.Ext(key))
	if ct == "" {
		ct = "application/octet-stream"
	}
	hr := newHashingReader(r)
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(ct),
		oss.ObjectACL(oss.ACLPrivate),
	}
	if err := s.bucket.PutObject(key, hr, opts...); err != nil {
		return nil, fmt.Errorf("storage oss: put %s: %w", key, err)
	}
	return hr.result(key), nil
}

func (s *OSS) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	key, err := cleanKey(p)
	if err != nil {
		return nil, err
	}
	rc, err := s.bucket.GetObject(key, oss.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("storage oss: get %s: %w", key, err)
	}
	return rc, nil
}

func (s *OSS) Delete(ctx context.Context, p string) error {
	key, err := cleanKey(p)
	if err != nil {
		return err
	}
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("storage oss: delete %s: %w", key, err)
	}
	return nil
}

package repository

import (
	"bytes"
	"context"
	"fmt"
	"time"

	storage_go "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

// SupabaseStorage хранит чеки в бакете Supabase Storage и выдает
// публичные ссылки для колонки вложений реестра.
type SupabaseStorage struct {
	client *storage_go.Client
	bucket string
	log    *zap.Logger
}

// NewSupabaseStorage создает хранилище вложений
func NewSupabaseStorage(url, key, bucket string, log *zap.Logger) *SupabaseStorage {
	return &SupabaseStorage{
		client: storage_go.NewClient(url, key, nil),
		bucket: bucket,
		log:    log,
	}
}

// Upload загружает файл и возвращает публичную ссылку.
// Клиент Supabase не принимает контекст, поэтому отмена здесь
// не прерывает уже начатую загрузку.
func (s *SupabaseStorage) Upload(ctx context.Context, data []byte, name, description string) (string, error) {
	_ = ctx

	path := fmt.Sprintf("%s/%s", time.Now().Format("2006-01"), name)
	if _, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("upload attachment %q: %w", path, err)
	}

	link := s.client.GetPublicUrl(s.bucket, path).SignedURL
	s.log.Info("attachment uploaded",
		zap.String("path", path),
		zap.String("description", description),
		zap.Int("size", len(data)),
	)
	return link, nil
}

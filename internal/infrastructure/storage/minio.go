package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/boardroomai/meeting-analyzer/pkg/config"
)

// MinIOClient archives raw audio chunk bytes to object storage. Archival is
// best-effort: callers log and swallow failures so chunk processing is
// never blocked on storage.
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient creates a new MinIO client and ensures the bucket exists
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	ctx := context.Background()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// ArchiveChunk stores the raw bytes of one audio chunk under
// <meeting_id>/chunk_<chunk_id>.bin
func (m *MinIOClient) ArchiveChunk(ctx context.Context, meetingID, chunkID string, raw []byte) error {
	objectName := path.Join(meetingID, fmt.Sprintf("chunk_%s.bin", chunkID))
	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(raw), int64(len(raw)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to archive chunk: %w", err)
	}
	return nil
}

// ArchiveTranscript stores the rendered transcript text for a meeting
func (m *MinIOClient) ArchiveTranscript(ctx context.Context, meetingID, transcript string) error {
	objectName := path.Join(meetingID, "transcript.txt")
	reader := bytes.NewReader([]byte(transcript))
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, int64(len(transcript)), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return fmt.Errorf("failed to archive transcript: %w", err)
	}
	return nil
}

// ListMeetingObjects lists archived objects for a meeting
func (m *MinIOClient) ListMeetingObjects(ctx context.Context, meetingID string) ([]string, error) {
	var objects []string

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    meetingID + "/",
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		objects = append(objects, object.Key)
	}

	return objects, nil
}

// DeleteMeetingObjects removes all archived objects for a meeting
func (m *MinIOClient) DeleteMeetingObjects(ctx context.Context, meetingID string) error {
	objects, err := m.ListMeetingObjects(ctx, meetingID)
	if err != nil {
		return err
	}
	for _, object := range objects {
		if err := m.client.RemoveObject(ctx, m.bucket, object, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove %s: %w", object, err)
		}
	}
	return nil
}

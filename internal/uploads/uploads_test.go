package uploads

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/najdi/internal/db"
)

func TestNewRef(t *testing.T) {
	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	ref := NewRef("../../etc/passwd.JPG", now)
	assert.True(t, strings.HasPrefix(ref, "items/2026/03/07/"), ref)
	assert.True(t, strings.HasSuffix(ref, ".jpg"), ref)
	assert.NotContains(t, ref, "..")

	assert.NotEqual(t, NewRef("a.png", now), NewRef("a.png", now))
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"photo.jpg":           "photo.jpg",
		"../../etc/passwd":    "passwd",
		"/abs/path/photo.png": "photo.png",
		"":                    "upload",
		"..":                  "upload",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeName(in), "SafeName(%q)", in)
	}
}

func TestDBStorageRoundTrip(t *testing.T) {
	s := &DBStorage{DB: db.NewTestDB(t)}
	ctx := context.Background()

	ref, err := s.Put(ctx, "bag.jpg", "image/jpeg", []byte("jpeg bytes"))
	require.NoError(t, err)

	obj, err := s.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "bag.jpg", obj.Name)
	assert.Equal(t, "image/jpeg", obj.MIME)
	assert.Equal(t, []byte("jpeg bytes"), obj.Data)

	require.NoError(t, s.Delete(ctx, ref))
	_, err = s.Get(ctx, ref)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice is fine.
	assert.NoError(t, s.Delete(ctx, ref))
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]*s3.PutObjectInput
	data    map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]*s3.PutObjectInput{}, data: map[string][]byte{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, _ := io.ReadAll(in.Body)
	f.objects[*in.Key] = in
	f.data[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	put, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(f.data[*in.Key])),
		ContentType: put.ContentType,
		Metadata:    put.Metadata,
	}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, *in.Key)
	delete(f.data, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StorageRoundTrip(t *testing.T) {
	fake := newFakeS3()
	s := &S3Storage{Client: fake, Bucket: "najdi"}
	ctx := context.Background()

	ref, err := s.Put(ctx, "keys.png", "image/jpeg", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "najdi", *fake.objects[ref].Bucket)

	obj, err := s.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "keys.png", obj.Name)
	assert.Equal(t, "image/jpeg", obj.MIME)
	assert.Equal(t, []byte("data"), obj.Data)

	require.NoError(t, s.Delete(ctx, ref))
	_, err = s.Get(ctx, ref)
	assert.ErrorIs(t, err, ErrNotFound)
}

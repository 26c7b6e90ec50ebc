package remote

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePut struct {
	bucket, key string
	body        []byte
	err         error
}

func (f *fakePut) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func writeArchive(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "backup.zip")
	require.NoError(t, os.WriteFile(p, []byte("PK-fake"), 0o600))
	return p
}

func TestUpload_PutsObjectUnderDatedKey(t *testing.T) {
	fp := &fakePut{}
	u := newS3Uploader(fp, "vault")
	u.now = func() time.Time { return time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC) }

	loc, err := u.Upload(context.Background(), writeArchive(t))
	require.NoError(t, err)

	assert.Equal(t, "vault", fp.bucket)
	assert.True(t, strings.HasPrefix(fp.key, "archives/2026/3/7/"), fp.key)
	assert.True(t, strings.HasSuffix(fp.key, "/backup.zip"), fp.key)
	assert.Equal(t, "PK-fake", string(fp.body))
	assert.Equal(t, "s3://vault/"+fp.key, loc)
}

func TestUpload_MissingFile(t *testing.T) {
	u := newS3Uploader(&fakePut{}, "vault")
	_, err := u.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.zip"))
	require.Error(t, err)
}

func TestUpload_ClientError(t *testing.T) {
	boom := errors.New("access denied")
	u := newS3Uploader(&fakePut{err: boom}, "vault")

	_, err := u.Upload(context.Background(), writeArchive(t))
	require.ErrorIs(t, err, boom)
}

func TestNewS3Uploader_RequiresBucket(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), Settings{})
	require.Error(t, err)
}

func TestNewS3Uploader_StaticCredentials(t *testing.T) {
	u, err := NewS3Uploader(context.Background(), Settings{
		Bucket:    "vault",
		Region:    "us-east-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "admin",
		SecretKey: "secretpassword",
	})
	require.NoError(t, err)
	assert.Equal(t, "vault", u.bucket)
}

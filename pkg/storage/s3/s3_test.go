package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	objects map[string][]byte
	headErr error
}

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeClient) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if _, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestPrefixedRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{objects: map[string][]byte{}}
	s := NewWithClient(client, "catalog", "/releases/")

	require.NoError(t, s.PutObject(ctx, "poe1/zip/fgdb.zip", strings.NewReader("zip"), 3))
	assert.Contains(t, client.objects, "catalog/releases/poe1/zip/fgdb.zip")

	ok, err := s.ObjectExists(ctx, "poe1/zip/fgdb.zip")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.GetObject(ctx, "poe1/zip/fgdb.zip")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "zip", string(data))
}

func TestMissingObjects(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{objects: map[string][]byte{}}
	s := NewWithClient(client, "catalog", "")

	_, err := s.GetObject(ctx, "poe2/zip/fgdb.zip")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	ok, err := s.ObjectExists(ctx, "poe2/zip/fgdb.zip")
	require.NoError(t, err)
	assert.False(t, ok)

	client.headErr = errors.New("connection reset")
	_, err = s.ObjectExists(ctx, "poe2/zip/fgdb.zip")
	assert.Error(t, err)
}

func TestNewValidates(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
	_, err = New(Config{Bucket: "b", AccessKey: "only-half"})
	assert.Error(t, err)
}

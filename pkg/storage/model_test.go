package storage

import (
	"errors"
	"ossgate/internal/errs"
	"ossgate/pkg/common"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_WithCorrection(t *testing.T) {
	original := Config{Provider: common.Aliyun, Region: "oss-cn-hangzhou", Bucket: "b"}
	corrected := original.WithCorrection("https://oss-cn-shanghai.aliyuncs.com", "oss-cn-shanghai")

	assert.Equal(t, "oss-cn-hangzhou", original.Region, "original must not be mutated")
	assert.Empty(t, original.Endpoint)
	assert.Equal(t, "oss-cn-shanghai", corrected.Region)
	assert.Equal(t, "https://oss-cn-shanghai.aliyuncs.com", corrected.Endpoint)
	assert.Equal(t, "b", corrected.Bucket)
}

func TestConfig_Redacted(t *testing.T) {
	cfg := Config{AccessKey: "AKIDEXAMPLE", SecretKey: "secret"}
	red := cfg.Redacted()
	assert.Equal(t, "AKID****", red.AccessKey)
	assert.Equal(t, "****", red.SecretKey)
	assert.Equal(t, "secret", cfg.SecretKey)
}

func TestListParams_WithDefaults(t *testing.T) {
	var nilParams *ListParams
	assert.Equal(t, ListParams{Delimiter: "/"}, nilParams.WithDefaults())

	p := &ListParams{Prefix: "docs/", MaxKeys: 10}
	assert.Equal(t, ListParams{Prefix: "docs/", Delimiter: "/", MaxKeys: 10}, p.WithDefaults())

	p = &ListParams{Delimiter: "|"}
	assert.Equal(t, "|", p.WithDefaults().Delimiter)
}

func TestEnvelope(t *testing.T) {
	ok := Envelope("a/b.txt", nil, "file uploaded successfully")
	assert.True(t, ok.Success)
	require.NotNil(t, ok.Data)
	assert.Equal(t, "a/b.txt", *ok.Data)
	assert.Empty(t, ok.Error)

	failed := Envelope("", errs.MissingBucket(), "ignored")
	assert.False(t, failed.Success)
	assert.Nil(t, failed.Data)
	assert.Equal(t, "missing bucket name", failed.Error)
	assert.Equal(t, "config", failed.Kind)
	assert.Empty(t, failed.Message)

	unknown := Failure[int](errors.New("boom"))
	assert.Equal(t, "unknown", unknown.Kind)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-1, "N/A"},
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in))
	}
}

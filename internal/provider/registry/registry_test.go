package registry

import (
	"ossgate/pkg/common"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinProvidersRegistered(t *testing.T) {
	want := []string{"aliyun", "aws", "huawei", "jdcloud", "ksyun", "minio", "qingcloud", "qiniu", "tencent"}
	supported := GetSupportedProviders()
	for _, name := range want {
		assert.Contains(t, supported, name)
	}
	assert.True(t, IsSupported(common.Provider("Tencent")), "lookup is case-insensitive")
	assert.False(t, IsSupported("azure"))
}

func TestRule_EndpointFor(t *testing.T) {
	tests := []struct {
		provider common.Provider
		region   string
		want     string
	}{
		{common.AWS, "eu-west-1", ""},
		{common.Aliyun, "oss-cn-shanghai", "https://oss-cn-shanghai.aliyuncs.com"},
		{common.Tencent, "ap-guangzhou", "https://cos.ap-guangzhou.myqcloud.com"},
		{common.Qiniu, "z1", "https://s3-cn-north-1.qiniucs.com"},
		{common.Qiniu, "cn-east-2", "https://s3-cn-east-2.qiniucs.com"},
		{common.MinIO, "anything", "http://localhost:9000"},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider)+"/"+tt.region, func(t *testing.T) {
			rule, ok := GetRule(tt.provider)
			require.True(t, ok)
			assert.Equal(t, tt.want, rule.EndpointFor(tt.region))
		})
	}
}

func TestRule_EffectiveRegion(t *testing.T) {
	minio, _ := GetRule(common.MinIO)
	assert.Equal(t, "us-east-1", minio.EffectiveRegion("eu-west-1"))

	ksyun, _ := GetRule(common.Ksyun)
	assert.Equal(t, "cn-beijing-6", ksyun.EffectiveRegion(""))
	assert.Equal(t, "cn-shanghai-2", ksyun.EffectiveRegion("cn-shanghai-2"))
}

func TestRegisterProvider_Panics(t *testing.T) {
	assert.Panics(t, func() { RegisterProvider(Rule{Provider: common.AWS}) }, "duplicate")
	assert.Panics(t, func() { RegisterProvider(Rule{}) }, "unnamed")
	assert.Panics(t, func() {
		RegisterProvider(Rule{Provider: "broken-template", EndpointTemplate: "https://static.example.com"})
	})
}

func TestRegisterProvider_AddsDataOnlyProvider(t *testing.T) {
	RegisterProvider(Rule{
		Provider:         "test-wasabi",
		DefaultRegion:    "us-east-1",
		EndpointTemplate: "https://s3.{region}.wasabisys.com",
		RegionPattern:    RegionPattern{Kind: PatternSegment, Prefix: "s3"},
	})

	rule, ok := GetRule("test-wasabi")
	require.True(t, ok)
	assert.Equal(t, "https://s3.eu-central-1.wasabisys.com", rule.EndpointFor("eu-central-1"))

	rules := GetAllRules()
	for i := 1; i < len(rules); i++ {
		assert.Less(t, rules[i-1].Provider, rules[i].Provider)
	}
}

func TestCatalogue(t *testing.T) {
	var tencent, minio *ProviderInfo
	infos := Catalogue()
	for i := range infos {
		switch infos[i].Name {
		case "tencent":
			tencent = &infos[i]
		case "minio":
			minio = &infos[i]
		}
	}

	require.NotNil(t, tencent)
	assert.Equal(t, "Tencent Cloud COS", tencent.DisplayName)
	assert.Equal(t, "https://cos.{region}.myqcloud.com", tencent.EndpointTemplate)
	assert.Contains(t, tencent.Regions, "ap-guangzhou")

	require.NotNil(t, minio)
	assert.Equal(t, "http://localhost:9000", minio.EndpointTemplate)
	assert.True(t, minio.PathStyle)
}

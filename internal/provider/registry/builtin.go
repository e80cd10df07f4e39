// File: internal/provider/registry/builtin.go
package registry

import "ossgate/pkg/common"

// The built-in provider rule table. Adding a provider is a new entry here.
var builtinRules = []Rule{
	{
		Provider:      common.AWS,
		DisplayName:   "AWS S3",
		DefaultRegion: "us-east-1",
		Regions:       []string{"us-east-1", "us-west-1", "us-west-2", "eu-west-1", "eu-central-1", "ap-southeast-1", "ap-northeast-1", "ap-south-1", "sa-east-1"},
	},
	{
		Provider:         common.Aliyun,
		DisplayName:      "Aliyun OSS",
		DefaultRegion:    "oss-cn-hangzhou",
		EndpointTemplate: "https://{region}.aliyuncs.com",
		RegionPattern:    RegionPattern{Kind: PatternBetween, Prefix: "oss-", Suffix: ".aliyuncs.com"},
		ListBuckets:      &ServiceEndpoint{URL: "https://oss.aliyuncs.com"},
		Regions:          []string{"oss-cn-hangzhou", "oss-cn-shanghai", "oss-cn-beijing", "oss-cn-shenzhen", "oss-cn-guangzhou", "oss-cn-chengdu", "oss-cn-hongkong", "oss-us-west-1", "oss-us-east-1", "oss-ap-southeast-1"},
	},
	{
		Provider:         common.Tencent,
		DisplayName:      "Tencent Cloud COS",
		DefaultRegion:    "ap-beijing",
		EndpointTemplate: "https://cos.{region}.myqcloud.com",
		RegionPattern:    RegionPattern{Kind: PatternSegment, Prefix: "cos"},
		ListBuckets:      &ServiceEndpoint{URL: "https://service.cos.myqcloud.com", KeepRegion: true},
		Regions:          []string{"ap-beijing", "ap-beijing-1", "ap-beijing-2", "ap-chengdu", "ap-chongqing", "ap-guangzhou", "ap-guangzhou-2", "ap-guangzhou-3", "ap-shanghai", "ap-shanghai-1", "ap-shanghai-2", "ap-shenzhen-fsi", "ap-shenzhen", "ap-hongkong", "ap-singapore", "ap-mumbai", "ap-seoul", "ap-tokyo", "ap-bangkok", "na-siliconvalley", "na-ashburn", "eu-frankfurt", "eu-moscow"},
	},
	{
		Provider:         common.Huawei,
		DisplayName:      "Huawei Cloud OBS",
		DefaultRegion:    "cn-north-1",
		EndpointTemplate: "https://obs.{region}.myhuaweicloud.com",
		RegionPattern:    RegionPattern{Kind: PatternSegment, Prefix: "obs"},
		Regions:          []string{"cn-north-1", "cn-north-4", "cn-east-2", "cn-east-3", "cn-south-1", "cn-southwest-2", "ap-southeast-1", "ap-southeast-2", "ap-southeast-3", "af-south-1", "sa-brazil-1"},
	},
	{
		Provider:         common.Qiniu,
		DisplayName:      "Qiniu Kodo",
		DefaultRegion:    "z0",
		EndpointTemplate: "https://s3-{region}.qiniucs.com",
		ZoneEndpoints: map[string]string{
			"z0":  "https://s3-cn-east-1.qiniucs.com",
			"z1":  "https://s3-cn-north-1.qiniucs.com",
			"z2":  "https://s3-cn-south-1.qiniucs.com",
			"na0": "https://s3-us-north-1.qiniucs.com",
			"as0": "https://s3-ap-southeast-1.qiniucs.com",
		},
		RegionPattern: RegionPattern{Kind: PatternAfterPrefix, Prefix: "s3-"},
		Regions:       []string{"z0", "z1", "z2", "na0", "as0"},
	},
	{
		Provider:         common.JDCloud,
		DisplayName:      "JD Cloud OSS",
		DefaultRegion:    "cn-north-1",
		EndpointTemplate: "https://s3.{region}.jdcloud-oss.com",
		RegionPattern:    RegionPattern{Kind: PatternSegment, Prefix: "s3"},
		Regions:          []string{"cn-north-1", "cn-east-1", "cn-east-2", "cn-south-1", "cn-northwest-1"},
	},
	{
		Provider:         common.Ksyun,
		DisplayName:      "Kingsoft Cloud KS3",
		DefaultRegion:    "cn-beijing-6",
		EndpointTemplate: "https://ks3-{region}.ksyuncs.com",
		RegionPattern:    RegionPattern{Kind: PatternAfterPrefix, Prefix: "ks3-"},
		Regions:          []string{"cn-beijing-6", "cn-shanghai-2", "cn-guangzhou-1", "cn-hongkong-1", "us-east-1", "us-west-1"},
	},
	{
		Provider:         common.QingCloud,
		DisplayName:      "QingCloud QingStor",
		DefaultRegion:    "pek3a",
		EndpointTemplate: "https://s3.{region}.qingstor.com",
		RegionPattern:    RegionPattern{Kind: PatternSegment, Prefix: "s3"},
		Regions:          []string{"pek3a", "pek3b", "sh1a", "sh1b", "gd2a", "gd2b", "ap2a", "ap2b", "ap1a", "ap1b"},
	},
	{
		Provider:      common.MinIO,
		DisplayName:   "MinIO",
		DefaultRegion: "us-east-1",
		FixedRegion:   "us-east-1",
		FixedEndpoint: "http://localhost:9000",
		PathStyle:     true,
		Regions:       []string{"us-east-1"},
	},
}

func init() {
	for _, rule := range builtinRules {
		RegisterProvider(rule)
	}
}

// File: pkg/common/provider.go
package common

import "strings"

// Provider identifies an S3-compatible object storage service
type Provider string

const (
	AWS       Provider = "aws"
	Aliyun    Provider = "aliyun"
	Tencent   Provider = "tencent"
	Huawei    Provider = "huawei"
	Qiniu     Provider = "qiniu"
	JDCloud   Provider = "jdcloud"
	Ksyun     Provider = "ksyun"
	QingCloud Provider = "qingcloud"
	MinIO     Provider = "minio"
)

// Normalizes user input (e.g. " Aliyun ") into a Provider identifier
func ParseProvider(name string) Provider {
	return Provider(strings.ToLower(strings.TrimSpace(name)))
}

func (p Provider) String() string {
	return string(p)
}

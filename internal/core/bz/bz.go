// Package bz 业务公共常量
package bz

// 业务 ID 前缀
const (
	IDPrefixProject = "pro"
	IDPrefixAsset   = "ast"
	IDPrefixCapture = "exp"
	IDPrefixPost    = "pub"
)

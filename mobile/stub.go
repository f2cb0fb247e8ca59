//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 桌面端与浏览器端不需要 ebitenmobile 入口，
// 这里只保留 Dummy，使 ./... 在没有 mobile 标签时也能编译。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}

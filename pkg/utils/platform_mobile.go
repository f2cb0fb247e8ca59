//go:build mobile

package utils

// IsMobile 使用 -tags mobile 构建（ebitenmobile 绑定）时恒为 true
// 移动端没有鼠标悬停，礼物盒和贺卡只响应点击
func IsMobile() bool {
	return true
}

// Package embedded 让各个包读取随程序打包的 data/ 文件
//
// embed 指令只能收录所在目录下的文件，所以 embed.FS 声明在根目录的 embed.go，
// 由 main 调用 Init 交给本包。测试和开发工具传入 os.DirFS 直接读仓库里的文件。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// dataDir 所有资源都位于此目录下
const dataDir = "data"

// ErrNotInitialized 在 Init 之前读取资源时返回
var ErrNotInitialized = errors.New("embedded: Init has not been called")

var dataFS fs.FS

// Init 设置资源文件系统，传入 nil 相当于重置
func Init(data fs.FS) {
	dataFS = data
}

// IsInitialized 是否已经调用过 Init
func IsInitialized() bool {
	return dataFS != nil
}

// resolve 把调用方给出的路径转成 fs.FS 可用的形式
// 接受 "data/x.yaml"、"./data/x.yaml" 以及 Windows 分隔符
func resolve(name string) (string, error) {
	if dataFS == nil {
		return "", ErrNotInitialized
	}
	name = path.Clean(filepath.ToSlash(name))
	if name != dataDir && !strings.HasPrefix(name, dataDir+"/") {
		return "", fmt.Errorf("embedded: %s is outside %s/", name, dataDir)
	}
	return name, nil
}

// ReadFile 读取资源文件
func ReadFile(name string) ([]byte, error) {
	p, err := resolve(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 资源文件是否存在
func Exists(name string) bool {
	p, err := resolve(name)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, p)
	return err == nil
}

// Glob 按模式列出资源文件
func Glob(pattern string) ([]string, error) {
	p, err := resolve(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}

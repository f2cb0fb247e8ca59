package game

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goregular"
)

// FontStyle 字体样式
type FontStyle int

const (
	// FontRegular 正文
	FontRegular FontStyle = iota
	// FontBold 标题、标签页
	FontBold
	// FontScript 手写风格的大标题与提示文字
	FontScript
)

// FontManager 按样式和字号缓存字体
//
// 内置 Go 字体作为默认字体；通过 --font 指定的字体排在最前面，
// 它缺少的字形由内置字体补齐（text.MultiFace）。
type FontManager struct {
	sources map[FontStyle]*text.GoTextFaceSource
	custom  *text.GoTextFaceSource
	faces   map[fontKey]text.Face
}

type fontKey struct {
	style FontStyle
	size  float64
}

// NewFontManager 加载内置字体，customFontPath 非空时额外加载用户字体
func NewFontManager(customFontPath string) (*FontManager, error) {
	fm := &FontManager{
		sources: make(map[FontStyle]*text.GoTextFaceSource),
		faces:   make(map[fontKey]text.Face),
	}

	builtin := map[FontStyle][]byte{
		FontRegular: goregular.TTF,
		FontBold:    gobold.TTF,
		FontScript:  gobolditalic.TTF,
	}
	for style, ttf := range builtin {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in font %d: %w", style, err)
		}
		fm.sources[style] = src
	}

	if customFontPath != "" {
		data, err := os.ReadFile(customFontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", customFontPath, err)
		}
		src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source for %s: %w", customFontPath, err)
		}
		fm.custom = src
		log.Printf("[FontManager] Using custom font: %s", customFontPath)
	}

	return fm, nil
}

// Face 返回指定样式与字号的字体（带缓存）
func (fm *FontManager) Face(style FontStyle, size float64) text.Face {
	key := fontKey{style: style, size: size}
	if face, ok := fm.faces[key]; ok {
		return face
	}

	src, ok := fm.sources[style]
	if !ok {
		src = fm.sources[FontRegular]
	}
	var face text.Face = &text.GoTextFace{
		Source:    src,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}

	if fm.custom != nil {
		primary := &text.GoTextFace{Source: fm.custom, Size: size}
		multi, err := text.NewMultiFace(primary, face)
		if err != nil {
			log.Printf("[FontManager] Warning: MultiFace failed, using built-in font: %v", err)
		} else {
			face = multi
		}
	}

	fm.faces[key] = face
	return face
}

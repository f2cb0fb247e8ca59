package game

import (
	"log"
	"sort"

	"github.com/decker502/giftcard/pkg/config"
)

// ViewportClass 视口分类，只影响装饰元素的数量和尺寸
type ViewportClass int

const (
	// ViewportRegular 宽度 >= CompactViewportWidth
	ViewportRegular ViewportClass = iota
	// ViewportCompact 宽度 < CompactViewportWidth（手机）
	ViewportCompact
)

// String 返回分类名，用于日志
func (c ViewportClass) String() string {
	if c == ViewportCompact {
		return "compact"
	}
	return "regular"
}

// ClassifyViewport 根据宽度分类
func ClassifyViewport(width int) ViewportClass {
	if width < config.CompactViewportWidth {
		return ViewportCompact
	}
	return ViewportRegular
}

// ViewportInfo 当前窗口尺寸（逻辑像素）与分类
type ViewportInfo struct {
	Width  int
	Height int
	Class  ViewportClass
}

// Compact 是否为紧凑视口
func (v ViewportInfo) Compact() bool {
	return v.Class == ViewportCompact
}

// ViewportObserver 跟踪窗口尺寸并通知订阅者
//
// 分类由宽度实时计算，不作为其他逻辑的依据；
// 同一尺寸重复 Observe 不会产生通知。
type ViewportObserver struct {
	current     ViewportInfo
	initialized bool

	subscribers map[int]func(ViewportInfo)
	nextID      int
}

// NewViewportObserver 创建观察者
func NewViewportObserver() *ViewportObserver {
	return &ViewportObserver{
		subscribers: make(map[int]func(ViewportInfo)),
	}
}

// Observe 记录新的窗口尺寸，尺寸变化时通知订阅者
// 返回是否发生了变化
func (vo *ViewportObserver) Observe(width, height int) bool {
	if vo.initialized && vo.current.Width == width && vo.current.Height == height {
		return false
	}

	prevClass := vo.current.Class
	vo.current = ViewportInfo{
		Width:  width,
		Height: height,
		Class:  ClassifyViewport(width),
	}
	if !vo.initialized || prevClass != vo.current.Class {
		log.Printf("[ViewportObserver] %dx%d → %s", width, height, vo.current.Class)
	}
	vo.initialized = true

	for _, id := range vo.subscriberIDs() {
		if fn, ok := vo.subscribers[id]; ok {
			fn(vo.current)
		}
	}
	return true
}

// Current 返回当前视口；尚未观察到任何尺寸时 ok 为 false
func (vo *ViewportObserver) Current() (info ViewportInfo, ok bool) {
	return vo.current, vo.initialized
}

// Subscribe 订阅视口变化，返回取消订阅函数
// 如果已经有视口，fn 会立即收到一次当前值
func (vo *ViewportObserver) Subscribe(fn func(ViewportInfo)) (unsubscribe func()) {
	id := vo.nextID
	vo.nextID++
	vo.subscribers[id] = fn

	if vo.initialized {
		fn(vo.current)
	}
	return func() {
		delete(vo.subscribers, id)
	}
}

// subscriberIDs 按订阅顺序返回 ID
func (vo *ViewportObserver) subscriberIDs() []int {
	ids := make([]int, 0, len(vo.subscribers))
	for id := range vo.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

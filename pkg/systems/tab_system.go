package systems

import (
	"log"

	"github.com/decker502/giftcard/pkg/components"
	"github.com/decker502/giftcard/pkg/config"
	"github.com/decker502/giftcard/pkg/ecs"
)

// TabSystem 贺卡页面的标签页选择与诗的手风琴展开
// 越界的输入被忽略并记录日志，不返回错误
type TabSystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
}

// NewTabSystem 创建选择器实体，初始为第 0 个标签页、没有展开的诗
func NewTabSystem(em *ecs.EntityManager) *TabSystem {
	ts := &TabSystem{entityManager: em}
	ts.entity = em.CreateEntity()
	ecs.AddComponent(em, ts.entity, &components.TabSelectorComponent{
		ActiveTab:      0,
		ExpandedPoem:   config.NoPoem,
		CollapsingPoem: config.NoPoem,
		// 首次显示不做滑入
		TabElapsed:  config.TabSlideDuration,
		PoemElapsed: config.PoemExpandDuration,
	})
	return ts
}

func (ts *TabSystem) component() *components.TabSelectorComponent {
	comp, ok := ecs.GetComponent[*components.TabSelectorComponent](ts.entityManager, ts.entity)
	if !ok {
		return nil
	}
	return comp
}

// SelectTab 切换到第 i 个标签页，重复选择同一页不产生变化
func (ts *TabSystem) SelectTab(i int) {
	comp := ts.component()
	if comp == nil {
		return
	}
	if i < 0 || i >= config.TabCount {
		log.Printf("[TabSystem] SelectTab(%d) out of range, ignored", i)
		return
	}
	if comp.ActiveTab == i {
		return
	}
	log.Printf("[TabSystem] Tab: %d → %d", comp.ActiveTab, i)
	comp.ActiveTab = i
	comp.TabElapsed = 0
}

// TogglePoem 展开第 i 条祝福的诗；已展开则收起
// 同一时间最多展开一首，展开新的会收起旧的
func (ts *TabSystem) TogglePoem(i int) {
	comp := ts.component()
	if comp == nil {
		return
	}
	if i < 0 || i >= config.WishCount {
		log.Printf("[TabSystem] TogglePoem(%d) out of range, ignored", i)
		return
	}

	if comp.ExpandedPoem == i {
		comp.CollapsingPoem = i
		comp.ExpandedPoem = config.NoPoem
		log.Printf("[TabSystem] Poem %d collapsed", i)
	} else {
		comp.CollapsingPoem = comp.ExpandedPoem
		comp.ExpandedPoem = i
		log.Printf("[TabSystem] Poem %d expanded", i)
	}
	comp.PoemElapsed = 0
}

// ActiveTab 当前标签页
func (ts *TabSystem) ActiveTab() int {
	if comp := ts.component(); comp != nil {
		return comp.ActiveTab
	}
	return 0
}

// ExpandedPoem 展开的祝福序号，NoPoem 表示没有
func (ts *TabSystem) ExpandedPoem() int {
	if comp := ts.component(); comp != nil {
		return comp.ExpandedPoem
	}
	return config.NoPoem
}

// Component 返回选择器组件，供布局与渲染读取
func (ts *TabSystem) Component() *components.TabSelectorComponent {
	return ts.component()
}

// Update 推进滑入与展开动画计时
func (ts *TabSystem) Update(dt float64) {
	comp := ts.component()
	if comp == nil {
		return
	}
	comp.TabElapsed += dt
	comp.PoemElapsed += dt
	if comp.CollapsingPoem != config.NoPoem && comp.PoemElapsed >= config.PoemExpandDuration {
		comp.CollapsingPoem = config.NoPoem
	}
}

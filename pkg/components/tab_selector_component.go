package components

// TabSelectorComponent 贺卡页面的标签页与诗的展开状态
type TabSelectorComponent struct {
	// ActiveTab 当前标签页，范围 [0, TabCount)
	ActiveTab int
	// TabElapsed 切换到当前标签页后的时间，驱动内容滑入
	TabElapsed float64

	// ExpandedPoem 展开的祝福序号，NoPoem(-1) 表示都未展开
	ExpandedPoem int
	// CollapsingPoem 正在收起的祝福序号，NoPoem 表示没有
	CollapsingPoem int
	// PoemElapsed 最近一次展开/收起后的时间
	PoemElapsed float64
}

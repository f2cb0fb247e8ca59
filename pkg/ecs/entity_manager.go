// Package ecs 是贺卡各页面共用的实体-组件存储
//
// 组件按具体类型（通常是指针类型）索引，系统通过 generics.go 中的泛型函数读写。
// 每个页面持有自己的 EntityManager，页面销毁时 Clear 一次性丢弃全部实体。
package ecs

import "reflect"

// EntityID 实体标识，0 表示无效
type EntityID uint64

// componentSet 单个实体的组件，按类型索引
type componentSet map[reflect.Type]any

// EntityManager 保存实体及其组件
//
// 删除是延迟的：DestroyEntity 只做标记，RemoveMarkedEntities 在帧末统一清理，
// 这样系统在遍历实体时可以安全地销毁实体。
type EntityManager struct {
	nextID   EntityID
	entities map[EntityID]componentSet

	// marked 待删除实体，保持标记顺序；同一实体只记录一次
	marked    []EntityID
	markedSet map[EntityID]struct{}
}

// NewEntityManager 创建空的实体存储
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:    1,
		entities:  make(map[EntityID]componentSet),
		markedSet: make(map[EntityID]struct{}),
	}
}

// CreateEntity 分配新的实体 ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.entities[id] = make(componentSet)
	return id
}

// DestroyEntity 标记实体待删除，重复标记无副作用
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, dup := em.markedSet[id]; dup {
		return
	}
	em.markedSet[id] = struct{}{}
	em.marked = append(em.marked, id)
}

// IsMarked 实体是否已标记删除
func (em *EntityManager) IsMarked(id EntityID) bool {
	_, ok := em.markedSet[id]
	return ok
}

// EntityExists 实体是否仍在存储中（已标记但未清理的也算）
func (em *EntityManager) EntityExists(id EntityID) bool {
	_, ok := em.entities[id]
	return ok
}

// EntityCount 存储中的实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// AddComponent 添加或替换组件，键为 component 的动态类型
func (em *EntityManager) AddComponent(id EntityID, component any) {
	em.setComponent(id, reflect.TypeOf(component), component)
}

// setComponent 以指定类型为键保存组件，实体不存在时忽略
func (em *EntityManager) setComponent(id EntityID, t reflect.Type, component any) {
	if set, ok := em.entities[id]; ok {
		set[t] = component
	}
}

// RemoveComponent 移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if set, ok := em.entities[id]; ok {
		delete(set, componentType)
	}
}

// GetComponent 读取指定类型的组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.entities[id][componentType]
	return comp, ok
}

// HasComponent 实体是否有指定类型的组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.entities[id][componentType]
	return ok
}

// RemoveMarkedEntities 删除所有已标记的实体
func (em *EntityManager) RemoveMarkedEntities() {
	if len(em.marked) == 0 {
		return
	}
	for _, id := range em.marked {
		delete(em.entities, id)
		delete(em.markedSet, id)
	}
	em.marked = em.marked[:0]
}

// Clear 立即删除所有实体
// ID 计数不重置，旧 ID 不会指向新实体
func (em *EntityManager) Clear() {
	clear(em.entities)
	clear(em.markedSet)
	em.marked = em.marked[:0]
}

// GetEntitiesWith 返回拥有全部指定组件类型的实体，顺序不定
// 需要稳定顺序时使用 GetEntitiesWith1 / GetEntitiesWith2
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	var result []EntityID
next:
	for id, set := range em.entities {
		for _, t := range componentTypes {
			if _, ok := set[t]; !ok {
				continue next
			}
		}
		result = append(result, id)
	}
	return result
}

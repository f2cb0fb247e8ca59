package ecs

import (
	"reflect"
	"sort"
)

// 泛型辅助函数
// 避免调用方到处写 reflect.TypeOf(&components.XxxComponent{}) 和类型断言

// typeOf 返回类型参数 T 对应的 reflect.Type
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加组件（泛型版本）
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.setComponent(id, typeOf[T](), component)
}

// GetComponent 获取实体的 T 类型组件
// 返回组件和是否找到
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent 移除实体的 T 类型组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有 T1 组件的实体，按 ID 升序返回
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return sortedIDs(em.GetEntitiesWith(typeOf[T1]()))
}

// GetEntitiesWith2 查询同时拥有 T1、T2 组件的实体，按 ID 升序返回
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return sortedIDs(em.GetEntitiesWith(typeOf[T1](), typeOf[T2]()))
}

// sortedIDs 按创建顺序排序，保证更新和绘制顺序稳定
func sortedIDs(ids []EntityID) []EntityID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

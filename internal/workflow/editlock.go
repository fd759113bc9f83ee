package workflow

// CanEditContent 判断成果的内容字段当前是否可编辑
// 只由状态决定;谁有资格发起编辑是边界层的授权问题,不在这里判断
func CanEditContent(status Status) bool {
	return status == StatusPending || status == StatusRejected
}

// EditableStatuses 返回允许编辑内容的状态集合
// 存储层用它构造条件更新,保证写入时刻重新检查编辑锁
func EditableStatuses() []Status {
	return []Status{StatusPending, StatusRejected}
}

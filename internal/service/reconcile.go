package service

// Diff 比较当前集合与目标集合，返回需要新增和需要删除的元素。
// 两边都有的元素不出现在结果中，对应的数据库行保持不变。结果顺序跟随输入顺序。
func Diff[K comparable](current, desired []K) (toAdd, toRemove []K) {
	currentSet := make(map[K]struct{}, len(current))
	for _, k := range current {
		currentSet[k] = struct{}{}
	}
	desiredSet := make(map[K]struct{}, len(desired))
	for _, k := range desired {
		desiredSet[k] = struct{}{}
	}

	for _, k := range desired {
		if _, ok := currentSet[k]; !ok {
			toAdd = append(toAdd, k)
			currentSet[k] = struct{}{}
		}
	}
	for _, k := range current {
		if _, ok := desiredSet[k]; !ok {
			toRemove = append(toRemove, k)
			desiredSet[k] = struct{}{}
		}
	}
	return toAdd, toRemove
}

package viewer

// FileChosenEvent 文件选择器选中了一个文件
type FileChosenEvent struct {
	Path string
}

// EventQueue 收集在 tick 之间到达的文件选择事件
// 只在主循环中使用，不需要加锁
type EventQueue struct {
	fileChosen []FileChosenEvent
}

// PushFileChosen 追加一个文件选择事件
func (q *EventQueue) PushFileChosen(ev FileChosenEvent) {
	q.fileChosen = append(q.fileChosen, ev)
}

// DrainFileChosen 取出全部待处理事件（按到达顺序）
func (q *EventQueue) DrainFileChosen() []FileChosenEvent {
	if len(q.fileChosen) == 0 {
		return nil
	}
	out := q.fileChosen
	q.fileChosen = nil
	return out
}

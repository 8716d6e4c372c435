// file: services/notifier.go
package services

// Notifier 管理端实时推送通道，尽力而为、无送达保证。
// 通过构造函数显式注入；为 nil 时核心流程照常执行，仅跳过通知。
type Notifier interface {
	Emit(event string, payload interface{})
}

// 推送事件名
const (
	EventTeamUpdate      = "teamUpdate"
	EventRoundCompletion = "roundCompletion"
	EventGameComplete    = "gameComplete"
)

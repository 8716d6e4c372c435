// file: services/errors.go
package services

import (
	"errors"
)

// 领域错误，属于正常返回契约的一部分；
// 存储层故障等基础设施错误直接向上包装传播，不在此列
var (
	ErrTeamNotFound      = errors.New("队伍不存在")
	ErrClueNotFound      = errors.New("线索不存在")
	ErrAccessDenied      = errors.New("无权查看该线索")
	ErrTeamEliminated    = errors.New("队伍已被淘汰")
	ErrInvalidRound      = errors.New("轮次编号无效")
	ErrCheckpointApplied = errors.New("该轮次已结算过")
	ErrNotEliminated     = errors.New("队伍并未处于淘汰状态")
)

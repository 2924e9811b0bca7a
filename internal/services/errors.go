package services

import (
	"errors"
	"fmt"
)

// 错误分三类：InvalidInput / NotFound / InvalidState 同步确定性地返回调用方；
// 存储层错误整个事务回滚后原样上抛；通知等副作用错误只记日志，永远不走这条通道。
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)

// 具体条件包装基础分类，调用方可用 errors.Is 精确匹配后给出提示
var (
	ErrSelfAction       = fmt.Errorf("%w: cannot target yourself", ErrInvalidInput)
	ErrRequestPending   = fmt.Errorf("%w: friend request already pending", ErrInvalidState)
	ErrAlreadyFriends   = fmt.Errorf("%w: already friends", ErrInvalidState)
	ErrBlocked          = fmt.Errorf("%w: relationship is blocked", ErrInvalidState)
	ErrNoPendingRequest = fmt.Errorf("%w: no pending friend request", ErrInvalidState)
	ErrNotFriends       = fmt.Errorf("%w: users are not friends", ErrInvalidState)
	ErrNotBlocked       = fmt.Errorf("%w: relationship is not blocked", ErrInvalidState)
	ErrNotBlocker       = fmt.Errorf("%w: only the blocker can unblock", ErrInvalidState)
)

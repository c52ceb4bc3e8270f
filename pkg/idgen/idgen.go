// Package idgen 提供雪花算法 ID 生成器，用于会话与交易的唯一标识
package idgen

import (
	"fmt"
	"sync"
	"time"
)

// Snowflake 雪花 ID 生成器：timestamp(41 bits) + nodeID(10 bits) + sequence(12 bits)
type Snowflake struct {
	mu        sync.Mutex
	timestamp int64
	sequence  int64
	nodeID    int64
}

// NewSnowflake 创建雪花 ID 生成器
func NewSnowflake(nodeID int64) *Snowflake {
	return &Snowflake{nodeID: nodeID & 0x3FF}
}

// Generate 生成雪花 ID
func (s *Snowflake) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()

	if now == s.timestamp {
		s.sequence = (s.sequence + 1) & 0xFFF
		if s.sequence == 0 {
			// 等待下一毫秒
			for now <= s.timestamp {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		s.sequence = 0
	}

	s.timestamp = now

	return (now << 22) | (s.nodeID << 12) | s.sequence
}

var defaultGen = NewSnowflake(1)

// GenID 使用默认生成器生成 ID
func GenID() int64 {
	return defaultGen.Generate()
}

// SessionID 生成会话标识
func SessionID() string {
	return fmt.Sprintf("sess_%x", GenID())
}

// TransactionID 生成交易标识
func TransactionID() string {
	return fmt.Sprintf("txn_%x", GenID())
}

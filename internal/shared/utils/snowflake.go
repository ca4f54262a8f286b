package utils

import (
	"fmt"
	"sync"
	"time"
)

const (
	// 2024-01-01 00:00:00 UTC in milliseconds.
	snowflakeEpochMilli int64 = 1704067200000

	nodeBits uint8 = 10
	seqBits  uint8 = 12

	maxNodeID int64 = -1 ^ (-1 << nodeBits)
	maxSeq    int64 = -1 ^ (-1 << seqBits)

	nodeShift uint8 = seqBits
	timeShift uint8 = nodeBits + seqBits
)

// Snowflake issues time-ordered 63-bit ids: timestamp | node | sequence.
type Snowflake struct {
	mu     sync.Mutex
	nodeID int64
	lastTS int64
	seq    int64
	now    func() int64
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id out of range: %d", nodeID)
	}
	return &Snowflake{
		nodeID: nodeID,
		now:    func() int64 { return time.Now().UnixMilli() },
	}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	if ts < s.lastTS {
		// Clock went backwards; stay on the last timestamp so ids keep increasing.
		ts = s.lastTS
	}

	if ts == s.lastTS {
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			ts = s.waitNext(s.lastTS)
		}
	} else {
		s.seq = 0
	}

	s.lastTS = ts
	return ((ts - snowflakeEpochMilli) << timeShift) | (s.nodeID << nodeShift) | s.seq
}

// NodeOf extracts the node bits of an id produced by any Snowflake.
func NodeOf(id int64) int64 {
	return (id >> nodeShift) & maxNodeID
}

func (s *Snowflake) waitNext(lastTS int64) int64 {
	ts := s.now()
	for ts <= lastTS {
		time.Sleep(100 * time.Microsecond)
		ts = s.now()
	}
	return ts
}

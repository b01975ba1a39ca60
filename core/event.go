package core

import (
	"fmt"
	"strings"
)

// EventType 是 session 内事件的类型。cart 与 order 统称为 "buy" 信号。
type EventType int

const (
	EventClick EventType = iota
	EventCart
	EventOrder
)

var eventTypeNames = [...]string{"clicks", "carts", "orders"}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// IsBuy 判断事件是否为加购/下单。
func (t EventType) IsBuy() bool {
	return t == EventCart || t == EventOrder
}

// ParseEventType 按名称解析事件类型，兼容单复数（click / clicks）。
func ParseEventType(s string) (EventType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range eventTypeNames {
		if name == n || name+"s" == n {
			return EventType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

// MarshalText 使 EventType 可作为 YAML/JSON map key。
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(b []byte) error {
	v, err := ParseEventType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Event 是 session 中的一次交互，由外部加载后不可变。
type Event struct {
	AID  int64     `json:"aid" yaml:"aid"`
	Type EventType `json:"type" yaml:"type"`
}

// Session 是按事件时间升序（最旧在前）排列的事件序列，只读。
type Session struct {
	ID     int64   `json:"session" yaml:"session"`
	Events []Event `json:"events" yaml:"events"`
}

// AIDs 返回按时间顺序排列的 aid。
func (s *Session) AIDs() []int64 {
	out := make([]int64, len(s.Events))
	for i, e := range s.Events {
		out[i] = e.AID
	}
	return out
}

func (s *Session) Len() int { return len(s.Events) }

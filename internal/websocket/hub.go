package websocket

import (
	"sync"
)

// Hub 管理所有成果状态推送连接
// 连接按用户 ID 索引,一个用户可以有多个并发连接 (多标签页/多设备)
type Hub struct {
	// 按用户 ID 索引的连接集合
	byUser map[string]map[*Client]struct{}

	mu sync.RWMutex
}

// NewHub 创建新的 Hub
func NewHub() *Hub {
	return &Hub{
		byUser: make(map[string]map[*Client]struct{}),
	}
}

// Register 注册客户端连接
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.byUser[client.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.byUser[client.UserID] = set
	}
	set[client] = struct{}{}
}

// Unregister 注销客户端连接并关闭其发送通道
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.byUser[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.Send)
	if len(set) == 0 {
		delete(h.byUser, client.UserID)
	}
}

// SendToUser 向某个用户的所有连接推送消息
// 发送缓冲满的连接会被踢掉,慢消费者不能拖慢通知投递
func (h *Hub) SendToUser(userID string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.byUser[userID]
	if !ok {
		return
	}
	for client := range set {
		select {
		case client.Send <- message:
		default:
			delete(set, client)
			close(client.Send)
		}
	}
	if len(set) == 0 {
		delete(h.byUser, userID)
	}
}

// Broadcast 向所有已连接用户推送消息
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, set := range h.byUser {
		for client := range set {
			select {
			case client.Send <- message:
			default:
				delete(set, client)
				close(client.Send)
			}
		}
		if len(set) == 0 {
			delete(h.byUser, userID)
		}
	}
}

// ConnectionCount 获取当前连接数
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, set := range h.byUser {
		count += len(set)
	}
	return count
}

package redis

import "fmt"

// CartKey 会话购物车的哈希键。
func CartKey(sessionID string) string {
	return fmt.Sprintf("marketplace:cart:%s", sessionID)
}

// RateLimitKey 变更接口限流键，按客户端 IP。
func RateLimitKey(ip string) string {
	return fmt.Sprintf("rate_limit:marketplace:mutate:%s", ip)
}

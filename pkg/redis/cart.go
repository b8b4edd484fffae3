package redis

import (
	"context"
	"encoding/json"
	"time"

	rd "github.com/redis/go-redis/v9"

	"marketplace/internal/model"
)

// GetCart 读取会话购物车。found=false 表示 key 不存在（空车）。
func GetCart(ctx context.Context, rdb *rd.Client, sessionID string) (model.Cart, bool, error) {
	key := CartKey(sessionID)
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == rd.Nil {
			return model.Cart{SessionID: sessionID}, false, nil
		}
		return model.Cart{}, false, err
	}

	var items []model.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// 坏数据当空车处理，下一次 Put 会覆盖掉。
		return model.Cart{SessionID: sessionID}, false, nil
	}
	return model.Cart{SessionID: sessionID, Items: items}, true, nil
}

// PutCart 整体覆盖会话购物车并刷新 TTL。
func PutCart(ctx context.Context, rdb *rd.Client, sessionID string, items []model.CartItem, ttl time.Duration) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	key := CartKey(sessionID)
	pipe := rdb.TxPipeline()
	pipe.Set(ctx, key, raw, 0)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

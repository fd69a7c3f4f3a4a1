package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID 生成 24 位 hex 的 ObjectID 形式 id（所有存储后端共用）
func NewID() string { return primitive.NewObjectID().Hex() }

// ValidID 只校验形状，不关心是否存在
func ValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// NextStamp 返回新的 lastUpdated：毫秒精度，且严格大于 prev
func NextStamp(prev time.Time) time.Time {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

package db

import "gorm.io/gorm"

// StorageSlot 保存一个键对应的序列化值，项目列表整体存放在同一个键下。
type StorageSlot struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (StorageSlot) TableName() string {
	return "storage_slots"
}

// DefaultProjectsKey is the slot key holding the project collection.
const DefaultProjectsKey = "projects-local"

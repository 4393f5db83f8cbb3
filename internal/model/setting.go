package model

// SystemSetting is a persisted configuration record. Settings were an
// in-memory object in earlier revisions and were lost on restart; they are
// read and written transactionally now.
type SystemSetting struct {
	BaseModel
	Key   string `gorm:"type:varchar(100);uniqueIndex;not null" json:"key" validate:"required"`
	Value string `gorm:"type:text;not null" json:"value"`
}

// Known setting keys.
const (
	// SettingRestockOnStorageReject controls whether a storage-stage borrow
	// rejection restocks the reserved quantity. The legacy single-stage path
	// always restocks; the dual-approval path historically did not. Pending
	// product clarification, the behavior is configurable and off by default.
	SettingRestockOnStorageReject = "restock_on_storage_reject"
)

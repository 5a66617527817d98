package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget 月度类别预算，同一用户同一类别同一月份只保留一条（upsert）
// 预算删除为物理删除，保证唯一索引可以复用
type Budget struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_budget_user_category_month"`
	Category  string          `json:"category" gorm:"size:50;not null;uniqueIndex:idx_budget_user_category_month"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Month     string          `json:"month" gorm:"size:7;not null;uniqueIndex:idx_budget_user_category_month"` // YYYY-MM
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	User      User            `json:"-" gorm:"foreignKey:UserID"`
}

func (Budget) TableName() string {
	return "budgets"
}

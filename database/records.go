package database

import (
	"fmt"
	"time"

	"fintrack/models"

	"gorm.io/gorm"
)

// MonthRecords 某用户某月的全部分析输入
type MonthRecords struct {
	Month    models.MonthRange
	Expenses []models.Expense
	Income   []models.Income
	Budgets  []models.Budget
}

// LoadMonth 读取用户一个月内的支出、收入和该月预算
func LoadMonth(db *gorm.DB, userID uint, month models.MonthRange) (MonthRecords, error) {
	rec := MonthRecords{Month: month}

	expenses, income, err := LoadRange(db, userID, month.Start, month.End)
	if err != nil {
		return rec, err
	}
	rec.Expenses = expenses
	rec.Income = income

	if err := db.Where("user_id = ? AND month = ?", userID, month.Month).
		Order("category ASC").
		Find(&rec.Budgets).Error; err != nil {
		return rec, fmt.Errorf("查询预算失败: %w", err)
	}
	return rec, nil
}

// LoadRange 读取 [start, end] 日期范围内的支出与收入，按日期升序
func LoadRange(db *gorm.DB, userID uint, start, end time.Time) ([]models.Expense, []models.Income, error) {
	from, to := start.Format(models.DateLayout), end.Format(models.DateLayout)

	var expenses []models.Expense
	if err := db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC, id ASC").
		Find(&expenses).Error; err != nil {
		return nil, nil, fmt.Errorf("查询支出失败: %w", err)
	}

	var income []models.Income
	if err := db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC, id ASC").
		Find(&income).Error; err != nil {
		return nil, nil, fmt.Errorf("查询收入失败: %w", err)
	}
	return expenses, income, nil
}

// DeletedCounts 注销账号时删除的记录数
type DeletedCounts struct {
	Expenses int64 `json:"expenses"`
	Income   int64 `json:"income"`
	Budgets  int64 `json:"budgets"`
}

// DeleteUserData 在一个事务内物理删除用户及其全部记录
func DeleteUserData(db *gorm.DB, userID uint) (DeletedCounts, error) {
	var counts DeletedCounts
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Expense{})
		if res.Error != nil {
			return fmt.Errorf("删除支出失败: %w", res.Error)
		}
		counts.Expenses = res.RowsAffected

		res = tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Income{})
		if res.Error != nil {
			return fmt.Errorf("删除收入失败: %w", res.Error)
		}
		counts.Income = res.RowsAffected

		res = tx.Where("user_id = ?", userID).Delete(&models.Budget{})
		if res.Error != nil {
			return fmt.Errorf("删除预算失败: %w", res.Error)
		}
		counts.Budgets = res.RowsAffected

		if err := tx.Delete(&models.User{}, userID).Error; err != nil {
			return fmt.Errorf("删除用户失败: %w", err)
		}
		return nil
	})
	return counts, err
}

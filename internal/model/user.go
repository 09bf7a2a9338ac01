package model

import "strings"

type UserMode string

const (
	ModeBasic   UserMode = "basic"
	ModePremium UserMode = "premium"
)

func ParseUserMode(s string) (UserMode, bool) {
	switch m := UserMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeBasic, ModePremium:
		return m, true
	}
	return "", false
}

// StatusTier 由正确答题数推导出的等级
type StatusTier string

const (
	TierNovice   StatusTier = "novice"
	TierAdvanced StatusTier = "advanced"
	TierElite    StatusTier = "elite"
)

const (
	advancedThreshold = 11
	eliteThreshold    = 51
)

// DeriveStatusTier 纯函数：>=51 elite，11..50 advanced，其余 novice
func DeriveStatusTier(correctAnswers int) StatusTier {
	switch {
	case correctAnswers >= eliteThreshold:
		return TierElite
	case correctAnswers >= advancedThreshold:
		return TierAdvanced
	default:
		return TierNovice
	}
}

// swagger:model User
type User struct {
	UUIDBase
	Email              string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password           string     `gorm:"size:100;not null" json:"-"`
	Nickname           string     `gorm:"size:100;not null" json:"nickname"`
	Language           Language   `gorm:"size:10" json:"language"`
	Mode               UserMode   `gorm:"size:20;default:'basic'" json:"mode"`
	StatusTier         StatusTier `gorm:"size:20;default:'novice'" json:"status"`
	CorrectAnswerCount int        `gorm:"default:0" json:"correctAnswers"`
}

func (User) TableName() string {
	return "users"
}

// RefreshTier 重新计算等级，返回是否发生变化
func (u *User) RefreshTier() bool {
	tier := DeriveStatusTier(u.CorrectAnswerCount)
	if u.StatusTier == tier {
		return false
	}
	u.StatusTier = tier
	return true
}

// PreferredLanguage 未设置或历史数据中的长代码都在这里归一
func (u *User) PreferredLanguage() Language {
	if l, ok := ParseLanguage(string(u.Language)); ok {
		return l
	}
	return BaseLanguage
}

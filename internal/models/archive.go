package models

import "time"

// PlayerRecord is the archived lifetime totals row for one participant.
type PlayerRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"column:external_id;uniqueIndex;not null;size:32" json:"external_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	EXP        int       `gorm:"column:exp;default:0" json:"EXP"`
	REP        int       `gorm:"column:rep;default:0" json:"cREP"`
	JCE        int       `gorm:"column:jce;default:0" json:"JCE"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for PlayerRecord.
func (PlayerRecord) TableName() string {
	return "players"
}

// ScoreEntryRecord is one participant's archived totals for one calendar day.
type ScoreEntryRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"type:date;not null;index:idx_score_day_player,unique" json:"date"`
	PlayerName  string    `gorm:"not null;size:255;index:idx_score_day_player,unique" json:"player_name"`
	ActionCount int       `gorm:"default:0" json:"action_count"`
	EXP         int       `gorm:"column:exp;default:0" json:"EXP"`
	REP         int       `gorm:"column:rep;default:0" json:"cREP"`
	JCE         int       `gorm:"column:jce;default:0" json:"JCE"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for ScoreEntryRecord.
func (ScoreEntryRecord) TableName() string {
	return "score_entries"
}

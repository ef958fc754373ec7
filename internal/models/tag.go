package models

// Tag 标签，由管理员维护
type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"uniqueIndex;size:200;not null" json:"name"`
	Color string `gorm:"size:7" json:"color"`
	Slug  string `gorm:"uniqueIndex;size:200;not null" json:"slug"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

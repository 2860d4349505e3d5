package model

import "time"

// Post — статья сайта. url — это alias (slug) статьи, уникален;
// статьи никогда не обновляются и не удаляются приложением.
type Post struct {
	ID    int64     `gorm:"primaryKey" json:"id"`
	Title string    `gorm:"size:256;not null" json:"title"`
	Text  string    `gorm:"type:text;not null" json:"text"`
	URL   string    `gorm:"size:256;not null;uniqueIndex" json:"url"`
	Time  time.Time `gorm:"not null" json:"time"`
}

func (Post) TableName() string { return "posts" }

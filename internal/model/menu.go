package model

// MenuItem — пункт главного меню сайта. Заполняется только демо-данными,
// в рантайме таблица используется только на чтение.
type MenuItem struct {
	ID    int64  `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:64;not null" json:"title"`
	URL   string `gorm:"size:256;not null" json:"url"`
}

// TableName историческое имя таблицы меню
func (MenuItem) TableName() string { return "mainmenu" }

package model

import "time"

// User — зарегистрированный пользователь.
// В psw хранится только bcrypt-хеш, никогда не исходный пароль.
// Аватар лежит блобом в той же строке и читается/пишется целиком.
type User struct {
	ID     int64     `gorm:"primaryKey" json:"id"`
	Name   string    `gorm:"size:128;not null" json:"name"`
	Email  string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	Psw    string    `gorm:"size:256;not null" json:"-"`
	Avatar []byte    `json:"-"`
	Time   time.Time `gorm:"not null" json:"time"`
}

func (User) TableName() string { return "users" }

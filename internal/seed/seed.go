// Package seed наполняет базу демо-данными: меню, несколько статей
// и три пользователя. Вызывается при старте на пустой базе
// и из cmd/seed руками.
package seed

import (
	"context"
	"time"

	"github.com/AUlyanoff/web-api-server/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// demoMenu — четыре пункта главного меню
var demoMenu = []model.MenuItem{
	{Title: "Главная", URL: "/"},
	{Title: "Добавить статью", URL: "/add_post"},
	{Title: "Авторизация", URL: "/login"},
	{Title: "Донаты", URL: "/donate"},
}

// demoPosts — стартовые статьи сайта
var demoPosts = []model.Post{
	{
		Title: "Про chi",
		URL:   "framework-chi-intro",
		Text: "<p>chi — это легковесный роутер для Go, совместимый с net/http. " +
			"<br>На нём можно сделать и лендинг, и многостраничный сайт с кучей плагинов и сервисов. " +
			"<br>Не фреймворк, а мечта!",
	},
	{
		Title: "Про GORM",
		URL:   "framework-gorm-intro",
		Text: "Сила GORM — в его ORM, object relational mapper, или «объектно-реляционное отображение». " +
			"<br>ORM позволяет управлять базами данных методами объектов в коде и при этом не писать SQL-запросы руками. " +
			"<br>На самом деле это очень удобно: пишешь привычный код, не переключаясь на SQL.",
	},
	{
		Title: "Про Go",
		URL:   "golang-intro",
		Text: "Go — это компилируемый язык программирования. <br>Он универсален, поэтому подходит для " +
			"решения разнообразных задач и для многих платформ: от серверных операционных систем до встраиваемых устройств. " +
			"<br>Программа на Go собирается в один статический бинарник.",
	},
	{
		Title: "Про API",
		URL:   "about_api",
		Text: "К этому сайту можно обращаться через api:<br>" +
			"/api/v1/users/count<br>" +
			"/api/v1/users/list<br>" +
			"Это неплохой пример, т.к. любое api в конце концов сводится к вычислениям над базой.",
	},
}

// demoUsers — три пользователя с паролем demo12345
var demoUsers = []model.User{
	{Name: "Lee Ji-Eun", Email: "iu@ya.ru"},
	{Name: "Uam12345", Email: "u@ya.ru"},
	{Name: "Sil12345", Email: "s@ya.ru"},
}

// Upload заполняет таблицы демо-данными.
// force=true — все таблицы предварительно уничтожаются и создаются заново,
// force=false — таблицы очищаются от всех записей.
func Upload(ctx context.Context, db *gorm.DB, force bool) error {
	models := []any{&model.MenuItem{}, &model.Post{}, &model.User{}}

	if force {
		if err := db.WithContext(ctx).Migrator().DropTable(models...); err != nil {
			return err
		}
		if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range models {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}

		menu := make([]model.MenuItem, len(demoMenu))
		copy(menu, demoMenu)
		if err := tx.Create(&menu).Error; err != nil {
			return err
		}

		now := time.Now()
		posts := make([]model.Post, len(demoPosts))
		copy(posts, demoPosts)
		for i := range posts {
			posts[i].Time = now
		}
		if err := tx.Create(&posts).Error; err != nil {
			return err
		}

		users := make([]model.User, len(demoUsers))
		copy(users, demoUsers)
		for i := range users {
			users[i].Psw = string(hash)
			users[i].Time = now
		}
		return tx.Create(&users).Error
	})
}

// Needed решает, пора ли наполнять базу: меню пустое — значит база свежая
func Needed(ctx context.Context, db *gorm.DB) bool {
	var n int64
	if err := db.WithContext(ctx).Model(&model.MenuItem{}).Count(&n).Error; err != nil {
		return false
	}
	return n == 0
}

package db

import (
	"database/sql"
	"log"

	"refbot/internal/models"
)

// GetAllProjects возвращает все проекты каталога в порядке создания.
func GetAllProjects() ([]models.Project, error) {
	rows, err := DB.Query(`
        SELECT id, title, description, image_url, link, created_at
        FROM projects ORDER BY created_at`)
	if err != nil {
		log.Printf("GetAllProjects: ошибка запроса списка проектов: %v", err)
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if errScan := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Link, &p.CreatedAt); errScan != nil {
			log.Printf("GetAllProjects: ошибка сканирования проекта: %v", errScan)
			continue
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProjectTitles возвращает только названия проектов — словарь для роутера меню.
func GetProjectTitles() ([]string, error) {
	rows, err := DB.Query(`SELECT title FROM projects ORDER BY created_at`)
	if err != nil {
		log.Printf("GetProjectTitles: ошибка запроса названий проектов: %v", err)
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if errScan := rows.Scan(&title); errScan != nil {
			continue
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// GetProjectByTitle извлекает проект по точному названию.
// Возвращает sql.ErrNoRows, если проекта нет.
func GetProjectByTitle(title string) (models.Project, error) {
	var p models.Project
	err := DB.QueryRow(`
        SELECT id, title, description, image_url, link, created_at
        FROM projects WHERE title=$1`, title).Scan(
		&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Link, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return p, err
		}
		log.Printf("GetProjectByTitle: ошибка поиска проекта '%s': %v", title, err)
		return p, err
	}
	return p, nil
}

// CreateProject добавляет проект в каталог (административный API).
func CreateProject(p models.Project) (models.Project, error) {
	err := DB.QueryRow(`
        INSERT INTO projects (title, description, image_url, link, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at`,
		p.Title, p.Description, p.ImageURL, p.Link).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		log.Printf("CreateProject: ошибка добавления проекта '%s': %v", p.Title, err)
		return p, err
	}
	log.Printf("Проект '%s' добавлен (id %d).", p.Title, p.ID)
	return p, nil
}

// UpdateProject обновляет поля проекта по id (административный API).
func UpdateProject(p models.Project) error {
	res, err := DB.Exec(`
        UPDATE projects SET title=$1, description=$2, image_url=$3, link=$4
        WHERE id=$5`,
		p.Title, p.Description, p.ImageURL, p.Link, p.ID)
	if err != nil {
		log.Printf("UpdateProject: ошибка обновления проекта id %d: %v", p.ID, err)
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteProject удаляет проект по id (административный API).
func DeleteProject(id int64) error {
	res, err := DB.Exec(`DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		log.Printf("DeleteProject: ошибка удаления проекта id %d: %v", id, err)
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("Проект id %d удален.", id)
	return nil
}

package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookmarkRepository struct {
	DB *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{DB: db}
}

// Upsert 每个学员每课时一条书签，重复添加覆盖位置和笔记
func (r *BookmarkRepository) Upsert(bookmark *model.LessonBookmark) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"position", "note", "updated_at"}),
	}).Create(bookmark).Error
}

func (r *BookmarkRepository) ListByUser(tenantID, userID string) ([]model.LessonBookmark, error) {
	var bookmarks []model.LessonBookmark
	err := r.DB.Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("updated_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

func (r *BookmarkRepository) Find(tenantID, userID, lessonID string) (*model.LessonBookmark, error) {
	var bookmark model.LessonBookmark
	err := r.DB.First(&bookmark, "tenant_id = ? AND user_id = ? AND lesson_id = ?", tenantID, userID, lessonID).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *BookmarkRepository) Delete(tenantID, userID, lessonID string) error {
	return r.DB.Where("tenant_id = ? AND user_id = ? AND lesson_id = ?", tenantID, userID, lessonID).
		Delete(&model.LessonBookmark{}).Error
}

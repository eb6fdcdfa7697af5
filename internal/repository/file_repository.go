package repository

import (
	"filevault-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(file *models.File) error {
	result := r.db.Create(file)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to create file record")
		return result.Error
	}
	return nil
}

func (r *FileRepository) GetByID(id uint) (*models.File, error) {
	var file models.File
	result := r.db.Where("id = ?", id).First(&file)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to get file record")
		return nil, result.Error
	}

	return &file, nil
}

// List returns one page of file records in id order together with the total
// row count.
func (r *FileRepository) List(limit, offset int) ([]models.File, int64, error) {
	var total int64
	if err := r.db.Model(&models.File{}).Count(&total).Error; err != nil {
		log.Error().Err(err).Msg("Failed to count file records")
		return nil, 0, err
	}

	var files []models.File
	result := r.db.Order("id").Limit(limit).Offset(offset).Find(&files)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to list file records")
		return nil, 0, result.Error
	}

	return files, total, nil
}

func (r *FileRepository) Update(file *models.File) error {
	result := r.db.Save(file)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to update file record")
		return result.Error
	}
	return nil
}

func (r *FileRepository) Delete(id uint) error {
	result := r.db.Delete(&models.File{}, "id = ?", id)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete file record")
		return result.Error
	}
	return nil
}

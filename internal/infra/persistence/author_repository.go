package persistence

import (
	"context"

	"biblio/internal/domain/entity"
	domainerrors "biblio/internal/domain/errors"
	"biblio/internal/domain/repository"
	"biblio/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// authorRepository implements the repository.AuthorRepository interface.
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository is the constructor for authorRepository.
func NewAuthorRepository(db *gorm.DB) repository.AuthorRepository {
	return &authorRepository{
		db: db,
	}
}

// FindByID retrieves an author by their unique ID.
func (repo *authorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Author, error) {
	var authorM model.AuthorModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&authorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAuthorNotFound
		}

		return nil, errors.Wrap(err, "failed to find author by ID")
	}

	return toAuthorDomain(&authorM), nil
}

// ListAll retrieves every author, ordered by last then first name.
func (repo *authorRepository) ListAll(ctx context.Context) ([]*entity.Author, error) {
	var authorModels []*model.AuthorModel

	if err := repo.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&authorModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list authors")
	}

	authors := make([]*entity.Author, 0, len(authorModels))
	for _, authorM := range authorModels {
		authors = append(authors, toAuthorDomain(authorM))
	}

	return authors, nil
}

// Create persists a new author.
func (repo *authorRepository) Create(ctx context.Context, author *entity.Author) error {
	authorM := fromAuthorDomain(author)

	if err := repo.db.WithContext(ctx).Create(authorM).Error; err != nil {
		// The unique index covers the (first name, last name, birth date) identity.
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAuthorAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("missing required author information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create author")
	}

	return nil
}

// Update modifies an existing author.
func (repo *authorRepository) Update(ctx context.Context, author *entity.Author) error {
	authorM := fromAuthorDomain(author)

	result := repo.db.WithContext(ctx).
		Model(&model.AuthorModel{}).
		Where("id = ?", author.ID).
		Select("nationality", "bio", "death_date", "website", "photo_url", "updated_at").
		Updates(authorM)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update author")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAuthorNotFound
	}

	return nil
}

// Delete removes an author by ID.
func (repo *authorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AuthorModel{})

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrAuthorHasBooks
		}

		return errors.Wrap(result.Error, "failed to delete author")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAuthorNotFound
	}

	return nil
}

// CountBooksByAuthor returns how many books reference the author.
func (repo *authorRepository) CountBooksByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.BookModel{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count books by author")
	}

	return count, nil
}

// --- Mapper Functions ---

// toAuthorDomain converts a GORM AuthorModel to a domain Author entity.
func toAuthorDomain(data *model.AuthorModel) *entity.Author {
	if data == nil {
		return nil
	}

	return &entity.Author{
		ID:          data.ID,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		BirthDate:   data.BirthDate,
		Nationality: data.Nationality,
		Bio:         data.Bio,
		DeathDate:   data.DeathDate,
		Website:     data.Website,
		PhotoURL:    data.PhotoURL,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromAuthorDomain converts a domain Author entity to a GORM AuthorModel.
func fromAuthorDomain(data *entity.Author) *model.AuthorModel {
	if data == nil {
		return nil
	}

	return &model.AuthorModel{
		ID:          data.ID,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		BirthDate:   data.BirthDate,
		Nationality: data.Nationality,
		Bio:         data.Bio,
		DeathDate:   data.DeathDate,
		Website:     data.Website,
		PhotoURL:    data.PhotoURL,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

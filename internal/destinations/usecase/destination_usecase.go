package usecase

import (
	"context"
	"time"

	"love-journey/internal/destinations/domain/model"
	"love-journey/internal/destinations/domain/repository"
	apperrors "love-journey/internal/shared/errors"
	"love-journey/internal/shared/logger"
)

// DestinationUsecase is the application service for destination records.
// Every repository-backed operation requires the storage connector to be
// ready; otherwise it fails with ErrServiceUnavailable.
type DestinationUsecase interface {
	List(ctx context.Context) ([]*model.Destination, error)
	Create(ctx context.Context, fields map[string]interface{}) (*model.Destination, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context, secret string) (int64, error)
	BulkImport(ctx context.Context, secret string, records []map[string]interface{}) (int64, error)
}

type destinationUsecase struct {
	repo      repository.DestinationRepository
	readiness repository.ReadinessReporter
	secret    string
	log       logger.Logger
	now       func() time.Time
}

// NewDestinationUsecase creates the destination application service. The
// secret is the shared passphrase gating clear and bulk import.
func NewDestinationUsecase(
	repo repository.DestinationRepository,
	readiness repository.ReadinessReporter,
	secret string,
	log logger.Logger,
) DestinationUsecase {
	return &destinationUsecase{
		repo:      repo,
		readiness: readiness,
		secret:    secret,
		log:       log.WithComponent("destination-usecase"),
		now:       time.Now,
	}
}

func (uc *destinationUsecase) ensureReady() error {
	if !uc.readiness.IsReady() {
		return apperrors.ErrServiceUnavailable
	}
	return nil
}

func (uc *destinationUsecase) List(ctx context.Context) ([]*model.Destination, error) {
	if err := uc.ensureReady(); err != nil {
		return nil, err
	}
	return uc.repo.List(ctx)
}

func (uc *destinationUsecase) Create(ctx context.Context, fields map[string]interface{}) (*model.Destination, error) {
	if err := uc.ensureReady(); err != nil {
		return nil, err
	}

	dest := model.FromMap(fields)
	if !dest.HasRequiredFields() {
		return nil, apperrors.NewValidationError("city and coordinates are required")
	}
	dest.CreatedAt = uc.now().UTC()

	stored, err := uc.repo.Insert(ctx, dest)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("Failed to create destination: %v", err)
		return nil, err
	}

	uc.log.WithFields(map[string]interface{}{
		"destination_id": stored.ID.Hex(),
		"city":           stored.City,
	}).Info("Destination created")
	return stored, nil
}

func (uc *destinationUsecase) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := uc.ensureReady(); err != nil {
		return err
	}

	// Server-owned fields never come from the merge set.
	merge := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		switch key {
		case model.FieldID, model.FieldMongoID, model.FieldCreatedAt, model.FieldUpdatedAt:
		default:
			merge[key] = value
		}
	}

	if err := uc.repo.Update(ctx, id, merge, uc.now().UTC()); err != nil {
		if !apperrors.IsNotFound(err) {
			uc.log.WithContext(ctx).Errorf("Failed to update destination %s: %v", id, err)
		}
		return err
	}

	uc.log.WithFields(map[string]interface{}{"destination_id": id}).Info("Destination updated")
	return nil
}

func (uc *destinationUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.ensureReady(); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		if !apperrors.IsNotFound(err) {
			uc.log.WithContext(ctx).Errorf("Failed to delete destination %s: %v", id, err)
		}
		return err
	}

	uc.log.WithFields(map[string]interface{}{"destination_id": id}).Info("Destination deleted")
	return nil
}

func (uc *destinationUsecase) Clear(ctx context.Context, secret string) (int64, error) {
	if err := uc.ensureReady(); err != nil {
		return 0, err
	}
	if secret != uc.secret {
		return 0, apperrors.ErrInvalidPassphrase
	}

	count, err := uc.repo.DeleteAll(ctx)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("Failed to clear destinations: %v", err)
		return 0, err
	}

	uc.log.WithFields(map[string]interface{}{"deleted": count}).Warn("All destinations cleared")
	return count, nil
}

// BulkImport replaces the whole collection with the given records in order.
// The replacement is best effort, not transactional: a failed insert after
// the delete leaves the collection partially filled.
func (uc *destinationUsecase) BulkImport(ctx context.Context, secret string, records []map[string]interface{}) (int64, error) {
	if err := uc.ensureReady(); err != nil {
		return 0, err
	}
	if secret != uc.secret {
		return 0, apperrors.ErrInvalidPassphrase
	}

	if _, err := uc.repo.DeleteAll(ctx); err != nil {
		uc.log.WithContext(ctx).Errorf("Failed to clear destinations before import: %v", err)
		return 0, err
	}
	if len(records) == 0 {
		uc.log.Info("Import with empty payload, collection cleared")
		return 0, nil
	}

	// Stagger creation timestamps by position so listing preserves the
	// input order.
	base := uc.now().UTC()
	dests := make([]*model.Destination, len(records))
	for i, record := range records {
		dest := model.FromMap(record)
		dest.CreatedAt = base.Add(time.Duration(i) * time.Second)
		dests[i] = dest
	}

	count, err := uc.repo.InsertMany(ctx, dests)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("Failed to import destinations: %v", err)
		return count, err
	}

	uc.log.WithFields(map[string]interface{}{"imported": count}).Info("Destinations imported")
	return count, nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"aura-inn/internal/domain/floor"
	"aura-inn/internal/domain/roomtype"
	"aura-inn/internal/infra"
	"aura-inn/internal/infra/jsonstore"
)

// CatalogStore reads the site content collections. They are maintained outside this service
// (seed file or the content editor) and treated as read-only here.
type CatalogStore struct {
	store   *jsonstore.Store
	slogger *slog.Logger
}

func NewCatalogStore(store *jsonstore.Store, slogger *slog.Logger) *CatalogStore {
	return &CatalogStore{
		store:   store,
		slogger: slogger,
	}
}

func (s *CatalogStore) RoomTypes(ctx context.Context) (roomtype.Catalog, error) {
	records, err := jsonstore.Get[[]roomTypeRecord](s.store, CollectionRoomTypes)
	if err != nil {
		return nil, s.wrapErr("failed to read room types", err)
	}
	out := make(roomtype.Catalog, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (s *CatalogStore) Floors(ctx context.Context) ([]floor.Floor, error) {
	records, err := jsonstore.Get[[]floorRecord](s.store, CollectionFloors)
	if err != nil {
		return nil, s.wrapErr("failed to read floors", err)
	}
	out := make([]floor.Floor, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

// AdminEmail is the owner address from the general settings; empty when unset.
func (s *CatalogStore) AdminEmail(ctx context.Context) (string, error) {
	data, err := jsonstore.Get[generalDataRecord](s.store, CollectionGeneralData)
	if err != nil {
		return "", s.wrapErr("failed to read general settings", err)
	}
	return data.AdminEmail, nil
}

// Collection returns the raw document, or nil when it has never been written.
func (s *CatalogStore) Collection(ctx context.Context, name string) (json.RawMessage, error) {
	raw, err := s.store.Raw(name)
	if err != nil {
		return nil, s.wrapErr("failed to read "+name, err)
	}
	return raw, nil
}

// Seed writes doc unless the collection already exists. It reports whether it wrote.
func (s *CatalogStore) Seed(ctx context.Context, name string, doc any) (bool, error) {
	existing, err := s.store.Raw(name)
	if err != nil {
		return false, s.wrapErr("failed to inspect "+name, err)
	}
	if existing != nil {
		return false, nil
	}
	if err := s.store.Save(name, doc); err != nil {
		return false, s.wrapErr("failed to seed "+name, err)
	}
	return true, nil
}

func (s *CatalogStore) wrapErr(msg string, err error) error {
	var decodeErr *jsonstore.DecodeError
	if errors.As(err, &decodeErr) {
		return infra.WrapRepoErr(s.slogger, infra.KindDecodeFailure, msg, err)
	}
	return infra.WrapRepoErr(s.slogger, infra.KindStoreFailure, msg, err)
}
